package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kyulli/flasHcARD/internal/deckio"
	"github.com/kyulli/flasHcARD/internal/domain"
	"github.com/kyulli/flasHcARD/internal/mdsource"
	"github.com/kyulli/flasHcARD/internal/review"
	"github.com/kyulli/flasHcARD/internal/sm2"
	"github.com/kyulli/flasHcARD/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server. Handlers are thin
// glue: every deck decision goes through the store, the session or the
// scheduler. All assets are embedded and served locally, so the app works
// without any network access.
type Server struct {
	store     *storage.Store
	session   *review.Session
	router    *http.ServeMux
	templates *template.Template
	reposDir  string
}

// NewServer creates and configures a new server.
func NewServer(store *storage.Store, reposDir string) *Server {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		store:     store,
		session:   review.NewSession(store),
		router:    http.NewServeMux(),
		templates: tpl,
		reposDir:  reposDir,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/", s.handleIndex())
	s.router.HandleFunc("/edit", s.handleEdit())

	// Review flow
	s.router.HandleFunc("/review/reveal", s.handleReveal())
	s.router.HandleFunc("/review/grade", s.handleGrade())

	// Deck editing
	s.router.HandleFunc("/cards", s.handleAddCard())
	s.router.HandleFunc("/cards/update/", s.handleUpdateCard())
	s.router.HandleFunc("/cards/delete/", s.handleDeleteCard())

	// Import / export
	s.router.HandleFunc("/export", s.handleExport())
	s.router.HandleFunc("/import", s.handleImportJSON())
	s.router.HandleFunc("/import/source", s.handleImportSource())
}

// reviewView is the template data for the review pane.
type reviewView struct {
	DueCount int
	Total    int
	HasCard  bool
	ShowBack bool
	Card     domain.Card
}

// editorView is the template data for the edit pane.
type editorView struct {
	Deck  domain.Deck
	Flash string
}

// pageView is the template data for the full page: which tab is active and
// the data for its pane.
type pageView struct {
	Tab    string
	Review reviewView
	Editor editorView
}

func (s *Server) reviewData() reviewView {
	s.session.Refresh()
	deck := s.store.Deck()
	view := reviewView{
		DueCount: deck.DueCount(time.Now()),
		Total:    len(deck),
	}
	if card, ok := s.session.Current(); ok {
		view.HasCard = true
		view.Card = card
		view.ShowBack = s.session.State() == review.BackShown
	}
	return view
}

func (s *Server) render(w http.ResponseWriter, data pageView) {
	if err := s.templates.ExecuteTemplate(w, "index", data); err != nil {
		slog.Error("failed to render page", "tab", data.Tab, "error", err)
	}
}

func (s *Server) renderReview(w http.ResponseWriter) {
	s.render(w, pageView{Tab: "review", Review: s.reviewData()})
}

func (s *Server) renderEditor(w http.ResponseWriter, flash string) {
	s.render(w, pageView{Tab: "edit", Editor: editorView{Deck: s.store.Deck(), Flash: flash}})
}

func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.renderReview(w)
	}
}

func (s *Server) handleEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderEditor(w, "")
	}
}

// handleReveal flips the current card to its back. One-way: the front
// never comes back for the same card instance.
func (s *Server) handleReveal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.session.Reveal()
		s.renderReview(w)
	}
}

// handleGrade applies a grade to the current card and moves on to the next
// due card. Grades with no card in flight are ignored by the session.
func (s *Server) handleGrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		grade, err := strconv.Atoi(r.PostFormValue("grade"))
		if err != nil || grade < 1 || grade > 4 {
			http.Error(w, "Invalid grade", http.StatusBadRequest)
			return
		}
		s.session.Grade(sm2.Grade(grade))
		s.renderReview(w)
	}
}

func (s *Server) handleAddCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		front := strings.TrimSpace(r.PostFormValue("front"))
		back := strings.TrimSpace(r.PostFormValue("back"))
		tag := strings.TrimSpace(r.PostFormValue("tag"))
		if front == "" || back == "" {
			s.renderEditor(w, "Front and back are required")
			return
		}

		card := domain.NewCard(uuid.NewString(), front, back, tag, time.Now())
		s.store.Add(card)
		s.session.Refresh()
		s.renderEditor(w, "")
	}
}

// handleUpdateCard edits a card's text fields in place. Edits never touch
// the scheduling state.
func (s *Server) handleUpdateCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/cards/update/")
		card, ok := s.store.Deck().Find(id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		card.Front = r.PostFormValue("front")
		card.Back = r.PostFormValue("back")
		card.Tag = r.PostFormValue("tag")
		s.store.Update(card)
		s.session.Refresh()
		s.renderEditor(w, "")
	}
}

func (s *Server) handleDeleteCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/cards/delete/")
		s.store.Remove(id)
		s.session.Refresh()
		s.renderEditor(w, "")
	}
}

// handleExport emits the whole deck as pretty-printed JSON, the same schema
// import accepts.
func (s *Server) handleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := deckio.Export(s.store.Deck())
		if err != nil {
			slog.Error("failed to export deck", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", deckio.ExportFilename))
		w.Write(payload)
	}
}

// handleImportJSON replaces the whole deck with an uploaded JSON file. A
// payload that fails to parse or validate leaves the deck untouched and is
// reported back to the user.
func (s *Server) handleImportJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		file, _, err := r.FormFile("deck")
		if err != nil {
			s.renderEditor(w, "No file uploaded")
			return
		}
		defer file.Close()

		deck, err := deckio.Import(file)
		if err != nil {
			slog.Warn("deck import rejected", "error", err)
			s.renderEditor(w, err.Error())
			return
		}

		s.store.Replace(deck)
		s.session.Refresh()
		s.renderEditor(w, fmt.Sprintf("Imported %d cards", len(deck)))
	}
}

// handleImportSource merges cards from a markdown source (local directory
// or git URL) into the deck.
func (s *Server) handleImportSource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		source := strings.TrimSpace(r.PostFormValue("source"))
		if source == "" {
			s.renderEditor(w, "Source path or URL is required")
			return
		}

		next, added, err := mdsource.Import(s.store.Deck(), source, s.reposDir, time.Now())
		if err != nil {
			slog.Warn("markdown source import failed", "source", source, "error", err)
			s.renderEditor(w, err.Error())
			return
		}

		s.store.Replace(next)
		s.session.Refresh()
		s.renderEditor(w, fmt.Sprintf("Added %d new cards from %s", added, source))
	}
}
