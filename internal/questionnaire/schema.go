// Package questionnaire holds the canonical VDT workstation checklist: the
// ordered question vocabulary, section grouping, option sets and the derived
// lookups every other package reads. The checklist is fixed; there is exactly
// one form and it is compiled into code.
package questionnaire

// FormID identifies the one checklist revision in stored responses.
const FormID = "checklist_vdt_v1"

type QuestionType string

const (
	TypeText          QuestionType = "text"
	TypeSelect        QuestionType = "select"
	TypeRadio         QuestionType = "radio"
	TypeCheckboxMulti QuestionType = "checkbox-multi"
	TypeTextarea      QuestionType = "textarea"
)

type Question struct {
	ID      string       `json:"id"`
	Section string       `json:"section"`
	Type    QuestionType `json:"type"`
	// Text is the full wording shown on the compile form; Label is the short
	// form used by analysis tables and reports.
	Text    string   `json:"question"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

const (
	sectionHeader = "Intestazione"
	section1      = "1) ORGANIZZAZIONE DEL LAVORO"
	section2      = "2) MICROCLIMA"
	section3      = "3) ILLUMINAZIONE"
	section4      = "4) RUMORE AMBIENTALE"
	section5      = "5) SPAZIO"
	section6      = "6) PIANO DI LAVORO"
	section7      = "7) SEDILE DI LAVORO"
	section8      = "8) SCHERMO VIDEO"
	section9      = "9) TASTIERA"
	section10     = "10) INTERFACCIA UOMO-MACCHINA"
	sectionEnd    = "Fine"
)

// PhotoQuestionID is rendered inline as an image when its value is a data URI.
const PhotoQuestionID = "foto_postazione"

var questions = []Question{
	{ID: "meta_nome", Section: sectionHeader, Type: TypeText,
		Text: "Nome del valutato (lavoratore o reparto)", Label: "Nome valutato / lavoratore"},
	{ID: "meta_postazione", Section: sectionHeader, Type: TypeText,
		Text: "Postazione n.", Label: "Postazione n."},
	{ID: "meta_reparto", Section: sectionHeader, Type: TypeText,
		Text: "Ufficio / Reparto", Label: "Ufficio / Reparto"},

	{ID: "1.1", Section: section1, Type: TypeSelect,
		Text:  "Ore di lavoro settimanali a VDT (abituali)",
		Label: "1.1 Ore di lavoro settimanali a VDT (abituali)", Options: []string{"<20", ">20"}},
	{ID: "1.2", Section: section1, Type: TypeRadio,
		Text:  "La mansione prevede pause/cambi attività di 15 minuti ogni 120 minuti di applicazione continuativa al VDT",
		Label: "1.2 Pause/cambi attività 15' ogni 120' (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "1.2_note", Section: section1, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "1.2 - Necessità di intervento (note)"},
	{ID: "1.3", Section: section1, Type: TypeCheckboxMulti,
		Text:  "Tipo di lavoro prevalente",
		Label: "1.3 Tipo di lavoro prevalente",
		Options: []string{"inserimento dati", "acquisizione dati", "videoscrittura", "programmazione"}},
	{ID: "1.4", Section: section1, Type: TypeRadio,
		Text:  "È stata effettuata informazione al lavoratore per il corretto uso del VDT",
		Label: "1.4 Informazione al lavoratore per uso VDT (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "1.4_note", Section: section1, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "1.4 - Necessità di intervento (note)"},

	{ID: "2.1", Section: section2, Type: TypeRadio,
		Text:  "Modalità per il ricambio d'aria dell'ambiente",
		Label: "2.1 Modalità ricambio aria (naturale/artificiale)", Options: []string{"naturale", "artificiale"}},
	{ID: "2.2", Section: section2, Type: TypeRadio,
		Text:  "Possibilità di regolare la temperatura dell'ambiente",
		Label: "2.2 Possibilità di regolare la temperatura", Options: []string{"presente", "non presente"}},
	{ID: "2.3", Section: section2, Type: TypeRadio,
		Text:  "Possibilità di regolare l'umidità dell'ambiente",
		Label: "2.3 Possibilità di regolare l'umidità", Options: []string{"presente", "non presente"}},
	{ID: "2.4", Section: section2, Type: TypeRadio,
		Text:  "Le attrezzature in dotazione producono eccesso di calore che comporta discomfort termico",
		Label: "2.4 Eccesso di calore dalle attrezzature (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "2.4_note", Section: section2, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "2.4 - Necessità di intervento (note)"},

	{ID: "3.1", Section: section3, Type: TypeRadio,
		Text:  "Tipo di luce",
		Label: "3.1 Tipo di luce (naturale/artificiale/mista)", Options: []string{"naturale", "artificiale", "mista"}},
	{ID: "3.2_nat", Section: section3, Type: TypeRadio,
		Text:  "Per regolazione luce naturale",
		Label: "3.2 - Regolazione luce naturale",
		Options: []string{"dispositivo copertura regolabile", "copertura non regolabile", "nessun dispositivo"}},
	{ID: "3.2_art", Section: section3, Type: TypeRadio,
		Text:  "Per regolazione luce artificiale",
		Label: "3.2 - Regolazione luce artificiale",
		Options: []string{"variatori di luminosità", "accensione a isole", "accensione centralizzata"}},
	{ID: "3.3", Section: section3, Type: TypeRadio,
		Text:  "Posizione della postazione rispetto alla sorgente di luce naturale",
		Label: "3.3 Posizione rispetto alla sorgente naturale", Options: []string{"perpendicolare", "frontale", "di spalle"}},
	{ID: "3_note", Section: section3, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "3 - Necessità di intervento (note)"},

	{ID: "4.1", Section: section4, Type: TypeText,
		Text: "Eventuale misura (dB(A))", Label: "4.1 Eventuale misura rumore (dB(A))"},
	{ID: "4.2", Section: section4, Type: TypeRadio,
		Text:  "Può disturbare l'attenzione e la comunicazione verbale",
		Label: "4.2 Disturbo attenzione/comunicazione (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "4_note", Section: section4, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "4 - Necessità di intervento (note)"},

	{ID: "5.1", Section: section5, Type: TypeRadio,
		Text:  "Spazio di lavoro e manovra adeguato per ruotare/assumere posture",
		Label: "5.1 Spazio di lavoro/manovra adeguato (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "5.2", Section: section5, Type: TypeRadio,
		Text:  "Percorsi liberi dagli ostacoli",
		Label: "5.2 Percorsi liberi da ostacoli (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "5_note", Section: section5, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "5 - Necessità di intervento (note)"},

	{ID: "6.1", Section: section6, Type: TypeRadio,
		Text:  "Superficie adeguata (poco ingombrante)",
		Label: "6.1 Superficie del piano adeguata (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "6.2", Section: section6, Type: TypeRadio,
		Text:  "Altezza del piano compresa indicativamente tra 70-80 cm",
		Label: "6.2 Altezza del piano 70-80cm (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "6.3", Section: section6, Type: TypeRadio,
		Text:  "Dimensioni e disposizione di schermo, tastiera, mouse adeguate",
		Label: "6.3 Dimensioni/disposizione schermo/tastiera/mouse (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "6_note", Section: section6, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "6 - Necessità di intervento (note)"},

	{ID: "7.1", Section: section7, Type: TypeRadio,
		Text:  "Altezza sedile regolabile",
		Label: "7.1 Altezza sedile regolabile", Options: []string{"SI", "NO", "NON PRESENTE"}},
	{ID: "7.2", Section: section7, Type: TypeRadio,
		Text:  "Inclinazione sedile regolabile",
		Label: "7.2 Inclinazione sedile regolabile", Options: []string{"SI", "NO", "NON PRESENTE"}},
	{ID: "7.3", Section: section7, Type: TypeRadio,
		Text:  "Schienale con supporto dorso-lombare",
		Label: "7.3 Schienale con supporto dorso-lombare", Options: []string{"SI", "NO", "NON PRESENTE"}},
	{ID: "7.4", Section: section7, Type: TypeRadio,
		Text:  "Schienale regolabile in altezza",
		Label: "7.4 Schienale regolabile in altezza", Options: []string{"SI", "NO", "NON PRESENTE"}},
	{ID: "7.5", Section: section7, Type: TypeRadio,
		Text:  "Schienale e seduta con bordi smussati e materiali appropriati",
		Label: "7.5 Schienale/seduta bordi smussati/materiali appropriati", Options: []string{"SI", "NO"}},
	{ID: "7.6", Section: section7, Type: TypeRadio,
		Text:  "Presenza di ruote/meccanismo spostamento (se previsto)",
		Label: "7.6 Presenza di ruote/meccanismo spostamento", Options: []string{"SI", "NO"}},
	{ID: "7_note", Section: section7, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "7 - Necessità di intervento (note)"},

	{ID: "8.1", Section: section8, Type: TypeRadio,
		Text:  "Monitor VDT orientabile/inclinabile",
		Label: "8.1 Monitor orientabile/inclinabile", Options: []string{"SI", "NO"}},
	{ID: "8.2", Section: section8, Type: TypeRadio,
		Text:  "Immagine stabile ed esente da sfarfallamento",
		Label: "8.2 Immagine stabile, senza sfarfallio", Options: []string{"SI", "NO"}},
	{ID: "8.3", Section: section8, Type: TypeRadio,
		Text:  "Risoluzione e luminosità del carattere regolabili",
		Label: "8.3 Risoluzione/luminosità regolabili", Options: []string{"SI", "NO"}},
	{ID: "8.4", Section: section8, Type: TypeRadio,
		Text:  "Contrasto e luminosità adeguati",
		Label: "8.4 Contrasto/luminosità adeguati", Options: []string{"SI", "NO"}},
	{ID: "8.5", Section: section8, Type: TypeRadio,
		Text:  "Presenza di riflessi o riverberi sullo schermo",
		Label: "8.5 Presenza di riflessi o riverberi", Options: []string{"SI", "NO"}},
	{ID: "8.6", Section: section8, Type: TypeText,
		Text:  "Note su posizione dello schermo (altezza occhi, distanza, ecc.)",
		Label: "8.6 Note su posizione dello schermo"},
	{ID: "8_note", Section: section8, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "8 - Necessità di intervento (note)"},

	{ID: "9.1", Section: section9, Type: TypeRadio,
		Text:  "Tastiera e mouse separati dallo schermo",
		Label: "9.1 Tastiera e mouse separati dallo schermo", Options: []string{"SI", "NO"}},
	{ID: "9.2", Section: section9, Type: TypeRadio,
		Text: "Tastiera inclinabile", Label: "9.2 Tastiera inclinabile", Options: []string{"SI", "NO"}},
	{ID: "9.3", Section: section9, Type: TypeRadio,
		Text:  "Spazio adeguato per appoggiare avambracci davanti alla tastiera",
		Label: "9.3 Spazio per appoggiare avambracci", Options: []string{"SI", "NO"}},
	{ID: "9.4", Section: section9, Type: TypeRadio,
		Text:  "Simboli/tasti leggibili dalla normale posizione",
		Label: "9.4 Simboli/tasti leggibili", Options: []string{"SI", "NO"}},
	{ID: "9_note", Section: section9, Type: TypeText,
		Text: "Necessità di intervento (eventuale)", Label: "9 - Necessità di intervento (note)"},

	{ID: "10.1", Section: section10, Type: TypeRadio,
		Text:  "Il software presente è di facile utilizzo e adeguato al lavoro svolto",
		Label: "10.1 Software adeguato e di facile utilizzo (SI/NO)", Options: []string{"SI", "NO"}},
	{ID: "10_note", Section: section10, Type: TypeText,
		Text: "Osservazioni (eventuali)", Label: "10 - Osservazioni (note)"},

	{ID: "foto_postazione", Section: sectionEnd, Type: TypeText,
		Text: "Foto della postazione (URL o nota)", Label: "Foto della postazione (URL/nota)"},
}

// sectionMarkers maps the first question id of each section to the title row
// inserted in grouped tables and report grids.
var sectionMarkers = map[string]string{
	"meta_nome": "INTESTAZIONE",
	"1.1":       "1) ORGANIZZAZIONE DEL LAVORO",
	"2.1":       "2) MICROCLIMA",
	"3.1":       "3) ILLUMINAZIONE",
	"4.1":       "4) RUMORE",
	"5.1":       "5) AMBIENTE DI LAVORO",
	"6.1":       "6) PIANO DI LAVORO",
	"7.1":       "7) SEDILE DI LAVORO",
	"8.1":       "8) SCHERMO",
	"9.1":       "9) TASTIERA E DISPOSITIVI DI INPUT",
	"10.1":      "10) SOFTWARE",
}

var byID = func() map[string]Question {
	m := make(map[string]Question, len(questions))
	for _, q := range questions {
		m[q.ID] = q
	}
	return m
}()

// Questions returns the checklist in presentation order. Callers must not
// mutate the returned slice.
func Questions() []Question {
	return questions
}

func ByID(id string) (Question, bool) {
	q, ok := byID[id]
	return q, ok
}

// Known reports whether id belongs to the fixed vocabulary. Unknown answer
// keys are silently dropped everywhere.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// SectionTitle returns the boundary title when id opens a new section.
func SectionTitle(id string) (string, bool) {
	t, ok := sectionMarkers[id]
	return t, ok
}

// Required reports whether a question must be answered on submission: every
// non-text question, plus the three header fields.
func Required(q Question) bool {
	switch q.Type {
	case TypeText, TypeTextarea:
		return q.ID == "meta_nome" || q.ID == "meta_postazione" || q.ID == "meta_reparto"
	default:
		return true
	}
}
