package scaffold

import "fmt"

// Common subdirectories of every area.
const (
	NotesDir      = "notes"
	FlashcardsDir = "flashcards"
	LinksFile     = "links.txt"
	NotesFile     = "my_notes.txt"
)

// BrowserDirs are the per-area browser profile directories reset by
// ResetBrowser.
var BrowserDirs = []string{"browser_firefox", "browser_comet", "browser_profile"}

// Template describes the extra structure of an area beyond the common
// notes and flashcards directories.
type Template struct {
	// Dirs are created inside the area directory.
	Dirs []string

	// Links seeds links.txt, one entry per line. Nil means no file.
	Links []string
}

// templates holds the built-in layouts of the default areas.
var templates = map[string]Template{
	"math": {
		Dirs:  []string{"browser_firefox"},
		Links: []string{"Math resources:", "https://www.khanacademy.org"},
	},
	"learning": {
		Dirs: []string{"browser_comet"},
		Links: []string{
			"Primuss: https://www3.primuss.de/",
			"Wikipedia: https://www.wikipedia.org",
			"ChatGPT: https://chat.openai.com",
		},
	},
	"work":      {Dirs: []string{"projects", "docs", "browser_profile"}},
	"gaming":    {Dirs: []string{"games", "clips", "browser_profile"}},
	"traveling": {Dirs: []string{"plans"}},
	"trading":   {Dirs: []string{"analysis"}},
}

// TemplateFor returns the layout for area. Areas without a built-in
// layout get a links file with a heading.
func TemplateFor(area string) Template {
	if t, ok := templates[area]; ok {
		return t
	}
	return Template{Links: []string{fmt.Sprintf("# Links for %s", area), ""}}
}
