// Package page holds the server-rendered pages. Components are built
// directly on templ's Component interface; the markup is static and
// the match UI hydrates itself from the JSON API.
package page

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func htmlPage(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`+title+`</title>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
`+body+`
</body>
</html>
`)
		return err
	})
}

// HomePage is the landing page: start a match or resume one.
func HomePage() templ.Component {
	return htmlPage("Deckbuilder", `<main class="home">
  <h1>Deckbuilder</h1>
  <p>A small deckbuilder match server.</p>
  <button id="new-match">New match</button>
  <ul id="match-list"></ul>
  <script src="/static/js/home.js"></script>
</main>`)
}

// MatchPage renders the playfield shell; js/match.js drives it
// against /api/match/state and /api/match/cmd.
func MatchPage() templ.Component {
	return htmlPage("Deckbuilder Match", `<main class="match">
  <header>
    <span id="turn"></span>
    <span id="energy"></span>
    <span id="player-health"></span>
    <span id="enemy-health"></span>
  </header>
  <section id="hand"></section>
  <footer>
    <span id="draw-count"></span>
    <span id="discard-count"></span>
    <button id="end-turn">End turn</button>
    <button id="concede">Concede</button>
  </footer>
  <script src="/static/js/match.js"></script>
</main>`)
}
