package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// concatSampleRate is the common rate every clip and silence is resampled to
const concatSampleRate = 24000

// Segment is one clip in a concatenation, followed by a pause
type Segment struct {
	Path         string
	SilenceAfter time.Duration
}

// Concatenator joins MP3 clips into a single MP3 with silences between them
type Concatenator interface {
	Concat(ctx context.Context, leadIn time.Duration, segments []Segment, dst string) error
}

// FFmpegConcatenator implements Concatenator with one ffmpeg filter graph
type FFmpegConcatenator struct {
	Binary string // ffmpeg executable, "ffmpeg" when empty
}

// NewFFmpegConcatenator checks that ffmpeg can be found
func NewFFmpegConcatenator() (*FFmpegConcatenator, error) {
	if err := checkFFmpegInstalled(); err != nil {
		return nil, err
	}
	return &FFmpegConcatenator{Binary: "ffmpeg"}, nil
}

// Concat writes leadIn silence, then each segment followed by its pause, to dst
func (c *FFmpegConcatenator) Concat(ctx context.Context, leadIn time.Duration, segments []Segment, dst string) error {
	if len(segments) == 0 {
		return fmt.Errorf("nothing to concatenate for %s", dst)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp := dst + ".tmp"

	binary := c.Binary
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, binary, ffmpegConcatArgs(leadIn, segments, tmp)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("ffmpeg concat failed: %w\nOutput: %s", err, string(output))
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move concatenated audio: %w", err)
	}
	return nil
}

// ffmpegConcatArgs builds the command line: every clip is an input, every
// pause an anullsrc source, all resampled to mono and joined by concat
func ffmpegConcatArgs(leadIn time.Duration, segments []Segment, dst string) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	for _, seg := range segments {
		args = append(args, "-i", seg.Path)
	}

	var graph []string
	var labels []string
	silence := 0
	addSilence := func(d time.Duration) {
		if d <= 0 {
			return
		}
		label := fmt.Sprintf("[s%d]", silence)
		silence++
		graph = append(graph, fmt.Sprintf("anullsrc=r=%d:cl=mono,atrim=duration=%.3f,aformat=sample_fmts=fltp%s",
			concatSampleRate, d.Seconds(), label))
		labels = append(labels, label)
	}

	addSilence(leadIn)
	for i, seg := range segments {
		label := fmt.Sprintf("[a%d]", i)
		graph = append(graph, fmt.Sprintf("[%d:a]aresample=%d,aformat=sample_fmts=fltp:channel_layouts=mono%s",
			i, concatSampleRate, label))
		labels = append(labels, label)
		addSilence(seg.SilenceAfter)
	}

	graph = append(graph, fmt.Sprintf("%sconcat=n=%d:v=0:a=1[out]", strings.Join(labels, ""), len(labels)))

	return append(args,
		"-filter_complex", strings.Join(graph, ";"),
		"-map", "[out]",
		"-c:a", "libmp3lame",
		"-q:a", "4",
		"-f", "mp3",
		"-y", dst,
	)
}
