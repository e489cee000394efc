package dialogue

// builtinLines is the restaurant dialogue (sections sec1 to sec9) followed by
// its vocabulary list (section vocab)
var builtinLines = []Line{
	{ID: "d001", Text: "Bonjour, bienvenue !", Role: "serveur", Section: "sec1"},
	{ID: "d002", Text: "Vous avez une réservation ?", Role: "serveur", Section: "sec1"},
	{ID: "d003", Text: "Oui, nous avons une réservation au nom de.", Role: "client", Section: "sec1"},
	{ID: "d004", Text: "Non, nous n’avons pas de réservation.", Role: "client", Section: "sec1"},
	{ID: "d005", Text: "Vous êtes combien ?", Role: "serveur", Section: "sec1"},
	{ID: "d006", Text: "Nous sommes deux.", Role: "client", Section: "sec1"},
	{ID: "d007", Text: "Suivez-moi, s’il vous plaît.", Role: "serveur", Section: "sec1"},
	{ID: "d008", Text: "Vous préférez être à l’intérieur ou en terrasse ?", Role: "serveur", Section: "sec1"},
	{ID: "d009", Text: "Est-ce qu’on peut avoir une table près de la fenêtre ?", Role: "client", Section: "sec1"},
	{ID: "d010", Text: "Bien sûr, installez-vous.", Role: "serveur", Section: "sec1"},

	{ID: "d011", Text: "Voici la carte.", Role: "serveur", Section: "sec2"},
	{ID: "d012", Text: "Je vous laisse quelques minutes.", Role: "serveur", Section: "sec2"},
	{ID: "d013", Text: "Vous avez des questions sur la carte ?", Role: "serveur", Section: "sec2"},
	{ID: "d014", Text: "Vous voulez un conseil ?", Role: "serveur", Section: "sec2"},
	{ID: "d015", Text: "Qu’est-ce que vous recommandez ?", Role: "client", Section: "sec2"},
	{ID: "d016", Text: "Le plat du jour, c’est le poisson grillé.", Role: "serveur", Section: "sec2"},
	{ID: "d017", Text: "C’est un plat assez épicé, ça vous va ?", Role: "serveur", Section: "sec2"},
	{ID: "d018", Text: "Oui, ça me va.", Role: "client", Section: "sec2"},
	{ID: "d019", Text: "Je préfère quelque chose de moins épicé.", Role: "client", Section: "sec2"},

	{ID: "d020", Text: "Qu’est-ce que vous voulez boire ?", Role: "serveur", Section: "sec3"},
	{ID: "d021", Text: "Vous voulez commencer par une boisson ?", Role: "serveur", Section: "sec3"},
	{ID: "d022", Text: "De l’eau plate ou gazeuse ?", Role: "serveur", Section: "sec3"},
	{ID: "d023", Text: "Une carafe d’eau, s’il vous plaît.", Role: "client", Section: "sec3"},
	{ID: "d024", Text: "Vous voulez du vin avec votre repas ?", Role: "serveur", Section: "sec3"},
	{ID: "d025", Text: "Je vais prendre un verre de vin rouge.", Role: "client", Section: "sec3"},
	{ID: "d026", Text: "Je vais prendre une bière, s’il vous plaît.", Role: "client", Section: "sec3"},

	{ID: "d027", Text: "Vous avez choisi ?", Role: "serveur", Section: "sec4"},
	{ID: "d028", Text: "Je peux prendre votre commande ?", Role: "serveur", Section: "sec4"},
	{ID: "d029", Text: "Oui, c’est bon.", Role: "client", Section: "sec4"},
	{ID: "d030", Text: "Pas encore, encore quelques minutes, s’il vous plaît.", Role: "client", Section: "sec4"},
	{ID: "d031", Text: "Qu’est-ce que vous prenez comme entrée ?", Role: "serveur", Section: "sec4"},
	{ID: "d032", Text: "Comme entrée, je vais prendre la soupe du jour.", Role: "client", Section: "sec4"},
	{ID: "d033", Text: "Et comme plat principal ?", Role: "serveur", Section: "sec4"},
	{ID: "d034", Text: "Comme plat principal, je vais prendre le poulet rôti.", Role: "client", Section: "sec4"},
	{ID: "d035", Text: "Vous voulez un dessert ?", Role: "serveur", Section: "sec4"},
	{ID: "d036", Text: "Oui, je vais prendre une crème brûlée.", Role: "client", Section: "sec4"},
	{ID: "d037", Text: "Non, merci.", Role: "client", Section: "sec4"},

	{ID: "d038", Text: "Avec ça, vous voulez des frites ou de la salade ?", Role: "serveur", Section: "sec5"},
	{ID: "d039", Text: "Des frites, s’il vous plaît.", Role: "client", Section: "sec5"},
	{ID: "d040", Text: "Et la cuisson du steak ? Saignant, à point ou bien cuit ?", Role: "serveur", Section: "sec5"},
	{ID: "d041", Text: "À point, s’il vous plaît.", Role: "client", Section: "sec5"},
	{ID: "d042", Text: "Vous voulez du pain avec ça ?", Role: "serveur", Section: "sec5"},
	{ID: "d043", Text: "Oui, s’il vous plaît.", Role: "client", Section: "sec5"},
	{ID: "d044", Text: "Non merci.", Role: "client", Section: "sec5"},

	{ID: "d045", Text: "Vous avez des allergies ?", Role: "serveur", Section: "sec6"},
	{ID: "d046", Text: "Oui, je suis allergique aux noix.", Role: "client", Section: "sec6"},
	{ID: "d047", Text: "D’accord, je vais le signaler en cuisine.", Role: "serveur", Section: "sec6"},
	{ID: "d048", Text: "Vous mangez de la viande ?", Role: "serveur", Section: "sec6"},
	{ID: "d049", Text: "Je ne mange pas de porc.", Role: "client", Section: "sec6"},
	{ID: "d050", Text: "Je ne mange pas de produits laitiers.", Role: "client", Section: "sec6"},
	{ID: "d051", Text: "Est-ce que ce plat contient du lait ?", Role: "client", Section: "sec6"},
	{ID: "d052", Text: "Est-ce que ce plat contient du gluten ?", Role: "client", Section: "sec6"},

	{ID: "d053", Text: "Tout se passe bien ?", Role: "serveur", Section: "sec7"},
	{ID: "d054", Text: "Ça vous plaît ?", Role: "serveur", Section: "sec7"},
	{ID: "d055", Text: "Oui, c’est très bon.", Role: "client", Section: "sec7"},
	{ID: "d056", Text: "C’est un peu trop salé.", Role: "client", Section: "sec7"},
	{ID: "d057", Text: "Je vous rapporte un peu d’eau ?", Role: "serveur", Section: "sec7"},
	{ID: "d058", Text: "Oui, merci.", Role: "client", Section: "sec7"},
	{ID: "d059", Text: "Non merci.", Role: "client", Section: "sec7"},

	{ID: "d060", Text: "L’addition, s’il vous plaît.", Role: "client", Section: "sec8"},
	{ID: "d061", Text: "Je vous apporte l’addition tout de suite.", Role: "serveur", Section: "sec8"},
	{ID: "d062", Text: "Vous payez ensemble ou séparément ?", Role: "serveur", Section: "sec8"},
	{ID: "d063", Text: "On va payer séparément, s’il vous plaît.", Role: "client", Section: "sec8"},
	{ID: "d064", Text: "Vous payez par carte ou en espèces ?", Role: "serveur", Section: "sec8"},
	{ID: "d065", Text: "Par carte, s’il vous plaît.", Role: "client", Section: "sec8"},
	{ID: "d066", Text: "En espèces.", Role: "client", Section: "sec8"},
	{ID: "d067", Text: "Je reviens avec la machine.", Role: "serveur", Section: "sec8"},
	{ID: "d068", Text: "C’était bon ?", Role: "serveur", Section: "sec8"},
	{ID: "d069", Text: "Oui, c’était délicieux, merci.", Role: "client", Section: "sec8"},

	{ID: "d070", Text: "Merci, bonne soirée !", Role: "serveur", Section: "sec9"},
	{ID: "d071", Text: "Merci, au revoir.", Role: "client", Section: "sec9"},

	{ID: "v001", Text: "un restaurant", Role: "client", Section: "vocab"},
	{ID: "v002", Text: "un serveur", Role: "client", Section: "vocab"},
	{ID: "v003", Text: "une serveuse", Role: "client", Section: "vocab"},
	{ID: "v004", Text: "la carte", Role: "client", Section: "vocab"},
	{ID: "v005", Text: "le menu", Role: "client", Section: "vocab"},
	{ID: "v006", Text: "l’addition", Role: "client", Section: "vocab"},
	{ID: "v007", Text: "une réservation", Role: "client", Section: "vocab"},
	{ID: "v008", Text: "une entrée", Role: "client", Section: "vocab"},
	{ID: "v009", Text: "un plat principal", Role: "client", Section: "vocab"},
	{ID: "v010", Text: "un dessert", Role: "client", Section: "vocab"},
	{ID: "v011", Text: "une soupe", Role: "client", Section: "vocab"},
	{ID: "v012", Text: "une salade", Role: "client", Section: "vocab"},
	{ID: "v013", Text: "du poulet", Role: "client", Section: "vocab"},
	{ID: "v014", Text: "du bœuf", Role: "client", Section: "vocab"},
	{ID: "v015", Text: "du poisson", Role: "client", Section: "vocab"},
	{ID: "v016", Text: "du riz", Role: "client", Section: "vocab"},
	{ID: "v017", Text: "des pâtes", Role: "client", Section: "vocab"},
	{ID: "v018", Text: "des légumes", Role: "client", Section: "vocab"},
	{ID: "v019", Text: "des frites", Role: "client", Section: "vocab"},
	{ID: "v020", Text: "du fromage", Role: "client", Section: "vocab"},
	{ID: "v021", Text: "du pain", Role: "client", Section: "vocab"},
	{ID: "v022", Text: "de l’eau plate", Role: "client", Section: "vocab"},
	{ID: "v023", Text: "de l’eau gazeuse", Role: "client", Section: "vocab"},
	{ID: "v024", Text: "du vin rouge", Role: "client", Section: "vocab"},
	{ID: "v025", Text: "du vin blanc", Role: "client", Section: "vocab"},
	{ID: "v026", Text: "une bière", Role: "client", Section: "vocab"},
	{ID: "v027", Text: "un café", Role: "client", Section: "vocab"},
	{ID: "v028", Text: "un thé", Role: "client", Section: "vocab"},
	{ID: "v029", Text: "un jus d’orange", Role: "client", Section: "vocab"},
}

// BuiltinScript returns a copy of the built-in restaurant script
func BuiltinScript() []Line {
	lines := make([]Line, len(builtinLines))
	copy(lines, builtinLines)
	return lines
}
