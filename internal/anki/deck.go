package anki

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Note is one sentence card pair
type Note struct {
	Number    string // Zero-padded ordinal, used as sort field prefix
	French    string
	Chinese   string
	AudioFile string // Optional path to the sentence clip
}

// Deck builds a single-deck Anki package
type Deck struct {
	name    string
	key     string // Stable identity, e.g. the lesson id
	deckID  int64
	modelID int64
	notes   []Note
	now     func() time.Time

	media map[string]int // maps media filename to its number in the package
}

// NewDeck creates a deck. IDs derive from key so re-imports update the
// existing deck instead of duplicating it.
func NewDeck(name, key string) *Deck {
	base := stableID(key)
	return &Deck{
		name:    name,
		key:     key,
		deckID:  base,
		modelID: base + 1,
		now:     time.Now,
		media:   make(map[string]int),
	}
}

// AddNote appends a note to the deck
func (d *Deck) AddNote(n Note) {
	d.notes = append(d.notes, n)
}

// Bytes returns the packaged deck
func (d *Deck) Bytes() ([]byte, error) {
	tempDir, err := os.MkdirTemp("", "phrasebook_apkg_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first: the note fields reference the assigned media names
	if err := d.copyMedia(tempDir); err != nil {
		return nil, fmt.Errorf("failed to copy media files: %w", err)
	}
	if err := d.writeMediaMapping(tempDir); err != nil {
		return nil, fmt.Errorf("failed to create media mapping: %w", err)
	}
	if err := d.createDatabase(filepath.Join(tempDir, "collection.anki2")); err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	return zipDirectory(tempDir)
}

// stableID maps a key onto a positive millisecond-sized integer
func stableID(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64()%1_000_000_000_000) + 1_000_000_000_000
}

func (d *Deck) mediaName(n Note) string {
	return fmt.Sprintf("%s_%s.mp3", d.key, n.Number)
}

func (d *Deck) copyMedia(tempDir string) error {
	counter := 0
	for _, n := range d.notes {
		if n.AudioFile == "" || !fileExists(n.AudioFile) {
			continue
		}
		name := d.mediaName(n)
		if _, ok := d.media[name]; ok {
			continue
		}
		if err := copyFile(n.AudioFile, filepath.Join(tempDir, fmt.Sprintf("%d", counter))); err != nil {
			return fmt.Errorf("failed to copy audio file %s: %w", n.AudioFile, err)
		}
		d.media[name] = counter
		counter++
	}
	return nil
}

func (d *Deck) writeMediaMapping(tempDir string) error {
	mapping := make(map[string]string, len(d.media))
	for name, num := range d.media {
		mapping[fmt.Sprintf("%d", num)] = name
	}
	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func (d *Deck) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	if err := d.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := d.insertNotes(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return nil
}

// schema is the legacy collection layout (schema version 11) that every
// Anki release still imports
var schema = []string{
	`CREATE TABLE col (id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL, usn integer NOT NULL,
		ls integer NOT NULL, conf text NOT NULL, models text NOT NULL, decks text NOT NULL,
		dconf text NOT NULL, tags text NOT NULL)`,
	`CREATE TABLE notes (id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL, flds text NOT NULL,
		sfld text NOT NULL, csum integer NOT NULL, flags integer NOT NULL, data text NOT NULL)`,
	`CREATE TABLE cards (id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL, type integer NOT NULL,
		queue integer NOT NULL, due integer NOT NULL, ivl integer NOT NULL, factor integer NOT NULL,
		reps integer NOT NULL, lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL)`,
	`CREATE TABLE revlog (id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
		factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

func (d *Deck) insertCollection(db *sql.DB) error {
	now := d.now().Unix()

	decks, err := json.Marshal(map[string]interface{}{
		"1":                         deckConfig(1, "Default", "", now),
		fmt.Sprintf("%d", d.deckID): deckConfig(d.deckID, d.name, "French phrases with Chinese translations", now),
	})
	if err != nil {
		return err
	}

	models, err := json.Marshal(map[string]interface{}{
		fmt.Sprintf("%d", d.modelID): d.noteType(now),
	})
	if err != nil {
		return err
	}

	conf, err := json.Marshal(map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", d.modelID),
		"dayLearnFirst": false,
	})
	if err != nil {
		return err
	}

	dconf, err := json.Marshal(map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500,
				"perDay": 20, "order": 1, "bury": true, "separate": true,
			},
			"lapse": map[string]interface{}{
				"delays": []int{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500,
				"ivlFct": 1, "bury": true, "minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		string(conf), string(models), string(decks), string(dconf), "{}")
	return err
}

// noteFields are the note type fields in order
var noteFields = []string{"French", "Chinese", "Audio", "Number"}

func (d *Deck) noteType(now int64) map[string]interface{} {
	flds := make([]map[string]interface{}, len(noteFields))
	for i, name := range noteFields {
		flds[i] = map[string]interface{}{
			"name": name, "ord": i, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		}
	}

	return map[string]interface{}{
		"id":        d.modelID,
		"name":      "Phrasebook (French ⇄ 中文)",
		"type":      0,
		"mod":       now,
		"usn":       -1,
		"sortf":     0,
		"did":       d.deckID,
		"req":       [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  "",
		"latexPost": "",
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{"name": "Écoute", "ord": 0, "qfmt": frontTemplate, "afmt": backTemplate, "did": nil, "bqfmt": "", "bafmt": ""},
			{"name": "Expression", "ord": 1, "qfmt": reverseFrontTemplate, "afmt": reverseBackTemplate, "did": nil, "bqfmt": "", "bafmt": ""},
		},
		"css": cardCSS,
	}
}

const frontTemplate = `<div class="front">
<div class="french">{{French}}</div>
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
</div>`

const backTemplate = `{{FrontSide}}

<hr id="answer">

<div class="back"><div class="chinese">{{Chinese}}</div></div>`

const reverseFrontTemplate = `<div class="front"><div class="chinese">{{Chinese}}</div></div>`

const reverseBackTemplate = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="french">{{French}}</div>
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
</div>`

const cardCSS = `.card {
  font-family: system-ui, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #222;
  background-color: #f7f7f7;
}

.french {
  font-size: 30px;
  font-weight: bold;
  color: #ff9800;
  margin: 20px 0;
}

.chinese {
  font-size: 26px;
  color: #555;
  margin: 20px 0;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ddd;
}`

func (d *Deck) insertNotes(db *sql.DB) error {
	now := d.now().Unix()

	for i, n := range d.notes {
		// Leave room for two cards per note
		noteID := d.deckID + int64(i*3) + 10
		chinese := n.Chinese
		if chinese == "" {
			chinese = "—"
		}

		audio := ""
		if _, ok := d.media[d.mediaName(n)]; ok {
			audio = fmt.Sprintf("[sound:%s]", d.mediaName(n))
		}

		fields := strings.Join([]string{n.French, chinese, audio, n.Number}, "\x1f")
		guid := fmt.Sprintf("pb_%s_%s", d.key, n.Number)

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID, guid, d.modelID, now, -1, d.key, fields, n.French, 0, 0, "")
		if err != nil {
			return fmt.Errorf("failed to insert note %s: %w", n.Number, err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + int64(ord) + 1
			_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				cardID, noteID, d.deckID, ord, now, -1,
				0, 0, // new card, new queue
				i*2+ord+1, // due is the position for new cards
				0, 0, 0, 0, 0, 0, 0, 0, "")
			if err != nil {
				return fmt.Errorf("failed to insert card %s/%d: %w", n.Number, ord, err)
			}
		}
	}

	return nil
}

// zipDirectory packs every file under dir into an in-memory zip
func zipDirectory(dir string) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := archive.Create(filepath.ToSlash(relPath))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
