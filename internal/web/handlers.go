package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/store"
)

// maxFormBytes bounds a submitted form body.
const maxFormBytes = 1 << 20

// pageSize is the number of notes per list page.
const pageSize = ops.DefaultListLimit

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *store.Store
	renderer *Renderer
}

// HandleList handles GET /notes: the new-note form followed by the list.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Limit:          parseIntParam(r, "limit", pageSize),
		Offset:         parseIntParam(r, "offset", 0),
		IncludeContent: true,
	}
	result := ops.List(h.store, input)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "list", h.renderer.listPage(result, h.store.Input()))
}

// HandleAdd handles POST /notes. A blank title or content leaves the list
// unchanged; the typed values stay in the form.
func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	fields, err := parseFields(w, r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.store.SetInput(fields)

	result, err := ops.Add(r.Context(), h.store, ops.AddInput{Title: fields.Title, Content: fields.Content})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		status := http.StatusOK
		if result.Added {
			status = http.StatusCreated
		}
		renderJSON(w, status, result)
		return
	}
	if result.Added && result.Note != nil {
		h.redirectToList(w, r, pageFor(result.Note.Index))
		return
	}
	h.redirectToList(w, r, "/notes")
}

// HandleDelete handles POST /notes/{index}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.Delete(r.Context(), h.store, ops.DeleteInput{Index: &index})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	// Stay on the page that held the note, or the last one if it emptied.
	h.redirectToList(w, r, pageFor(max(min(index, h.store.Len()-1), 0)))
}

// HandleStartEdit handles POST /notes/{index}/edit.
func (h *Handlers) HandleStartEdit(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	draft, err := h.store.StartEdit(index)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{"editing": draft})
		return
	}
	h.redirectToList(w, r, pageFor(draft.Index))
}

// HandleSubmitEdit handles POST /notes/{index}/submit. Submitted title and
// content form values replace the draft before it is saved; the values are
// stored as given, blank or not.
func (h *Handlers) HandleSubmitEdit(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if err := parseForm(w, r); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	var patch note.Patch
	if r.PostForm.Has("title") {
		title := r.PostForm.Get("title")
		patch.Title = &title
	}
	if r.PostForm.Has("content") {
		content := r.PostForm.Get("content")
		patch.Content = &content
	}

	edited, err := h.store.SubmitDraft(r.Context(), index, patch)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{"note": ops.NoteView{Index: index, Note: edited}})
		return
	}
	h.redirectToList(w, r, pageFor(index))
}

// HandleCancelEdit handles POST /notes/edit/cancel.
func (h *Handlers) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	target := "/notes"
	if draft, ok := h.store.Draft(); ok {
		target = pageFor(draft.Index)
	}
	cancelled := h.store.CancelEdit()

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{"cancelled": cancelled})
		return
	}
	h.redirectToList(w, r, target)
}

// redirectToList sends the browser to a list page after a form post.
func (h *Handlers) redirectToList(w http.ResponseWriter, r *http.Request, target string) {
	// HTMX request: redirect via HX-Redirect header
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// pageFor returns the list page URL that shows the note at index.
func pageFor(index int) string {
	return pageURL(index-index%pageSize, pageSize)
}

// pageURL returns the list URL for offset and limit, omitting defaults.
func pageURL(offset, limit int) string {
	q := url.Values{}
	if limit != pageSize {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if len(q) == 0 {
		return "/notes"
	}
	return "/notes?" + q.Encode()
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return errors.NewInvalidRequest("invalid form data")
	}
	return nil
}

// parseFields reads the title and content form values.
func parseFields(w http.ResponseWriter, r *http.Request) (note.Fields, error) {
	if err := parseForm(w, r); err != nil {
		return note.Fields{}, err
	}
	return note.Fields{
		Title:   r.PostForm.Get("title"),
		Content: r.PostForm.Get("content"),
	}, nil
}

// parseIndex reads the {index} path value.
func parseIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, errors.NewInvalidRequest("note index must be a non-negative integer")
	}
	return index, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
