package handler

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/grocerylist/internal/catalog"
	"github.com/vyrodovalexey/grocerylist/internal/categorize"
	"github.com/vyrodovalexey/grocerylist/internal/model"
	"github.com/vyrodovalexey/grocerylist/internal/store"
)

// Version is the application version.
const Version = "1.0.0"

// DefaultList is the {list} path value naming the main grocery list.
const DefaultList = "default"

// DefaultListTitle is the share title of the main grocery list.
const DefaultListTitle = "Grocery List"

const (
	defaultRandomCount = 4
	maxRandomCount     = 20
	groupByCategory    = "category"
)

var errUnknownList = errors.New("unknown list")

// ListProvider hands out the ListStore bound to a storage key.
type ListProvider interface {
	List(key string) *store.ListStore
}

// RESTHandler handles REST API requests for grocery lists.
type RESTHandler struct {
	lists   ListProvider
	catalog *catalog.Catalog
	logger  *zap.Logger
	newRand func() *rand.Rand
}

// NewRESTHandler creates a new RESTHandler instance.
func NewRESTHandler(lists ListProvider, cat *catalog.Catalog, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		lists:   lists,
		catalog: cat,
		logger:  logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// RegisterRoutes registers the REST API routes with the router.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categorize", h.CategorizeName).Methods(http.MethodGet)
	api.HandleFunc("/quick-add", h.ListQuickAdd).Methods(http.MethodGet)

	api.HandleFunc("/presets", h.SearchPresets).Methods(http.MethodGet)
	api.HandleFunc("/presets/random", h.RandomPresets).Methods(http.MethodGet)
	api.HandleFunc("/presets/{slug}", h.GetPreset).Methods(http.MethodGet)

	api.HandleFunc("/lists/{list}/items", h.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/lists/{list}/items", h.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/lists/{list}/quick-add/{name}", h.QuickAdd).Methods(http.MethodPost)
	api.HandleFunc("/lists/{list}/items/{id}", h.EditItem).Methods(http.MethodPut)
	api.HandleFunc("/lists/{list}/items/{id}", h.DeleteItem).Methods(http.MethodDelete)
	api.HandleFunc("/lists/{list}/items/{id}/toggle", h.ToggleItem).Methods(http.MethodPost)
	api.HandleFunc("/lists/{list}/share", h.ShareList).Methods(http.MethodGet)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Version: Version,
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// ReadyCheck handles GET /ready requests.
func (h *RESTHandler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(ReadyResponse{Status: "ready"}))
}

// ListCategories handles GET /api/v1/categories requests.
func (h *RESTHandler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := model.Categories()
	out := make([]CategoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryInfo{Name: c, Emoji: c.Emoji()})
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(out))
}

// CategorizeName handles GET /api/v1/categorize?name= requests.
func (h *RESTHandler) CategorizeName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	response := CategorizeResponse{
		Name:     name,
		Category: categorize.Categorize(name),
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// ListQuickAdd handles GET /api/v1/quick-add requests.
func (h *RESTHandler) ListQuickAdd(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(model.QuickAddItems()))
}

// SearchPresets handles GET /api/v1/presets?q= requests.
func (h *RESTHandler) SearchPresets(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	entries := h.catalog.Search(query)

	response := PresetSearchResponse{
		Query:  query,
		Total:  len(entries),
		Groups: catalog.GroupByLabel(entries),
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// RandomPresets handles GET /api/v1/presets/random requests.
func (h *RESTHandler) RandomPresets(w http.ResponseWriter, r *http.Request) {
	count := defaultRandomCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxRandomCount {
			h.writeError(w, http.StatusBadRequest, "count must be an integer between 0 and 20")
			return
		}
		count = n
	}

	exclude := r.URL.Query().Get("exclude")
	entries := h.catalog.Random(count, exclude, h.newRand())
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(entries))
}

// GetPreset handles GET /api/v1/presets/{slug} requests.
func (h *RESTHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	preset, ok := h.catalog.Get(slug)
	if !ok {
		h.writeError(w, http.StatusNotFound, "preset not found")
		return
	}

	response := PresetResponse{
		Slug:   slug,
		Title:  catalog.SlugToTitle(slug),
		Preset: preset,
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// ListItems handles GET /api/v1/lists/{list}/items requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ls, title, err := h.resolveList(r, true)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	mode, err := model.ParseFilterMode(r.URL.Query().Get("filter"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	group := r.URL.Query().Get("group")
	if group != "" && group != groupByCategory {
		h.writeError(w, http.StatusBadRequest, "group must be empty or category")
		return
	}

	items := ls.Load(r.Context())
	response := newListResponse(mux.Vars(r)["list"], title, mode, items, group == groupByCategory)
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// AddItem handles POST /api/v1/lists/{list}/items requests.
// A missing or empty category is filled in by the categorizer rather than
// defaulting to Other. Adding never seeds a preset list.
func (h *RESTHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ls, _, err := h.resolveList(r, false)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	item, err := ls.Add(r.Context(), input.Name, input.Quantity, input.Category)
	if err != nil {
		h.handleInputError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, model.NewSuccessResponse(item))
}

// QuickAdd handles POST /api/v1/lists/{list}/quick-add/{name} requests.
func (h *RESTHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	ls, _, err := h.resolveList(r, false)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	staple, ok := model.FindQuickAddItem(mux.Vars(r)["name"])
	if !ok {
		h.writeError(w, http.StatusNotFound, "quick-add item not found")
		return
	}

	item, err := ls.Add(r.Context(), staple.Name, model.DefaultQuantity, staple.Category)
	if err != nil {
		h.handleInputError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, model.NewSuccessResponse(item))
}

// EditItem handles PUT /api/v1/lists/{list}/items/{id} requests.
func (h *RESTHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	ls, title, err := h.resolveList(r, false)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if _, _, err := ls.Edit(r.Context(), id, input.Name, input.Quantity, input.Category); err != nil {
		h.handleInputError(w, err)
		return
	}

	h.writeSnapshot(w, r, ls, title)
}

// ToggleItem handles POST /api/v1/lists/{list}/items/{id}/toggle requests.
func (h *RESTHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	ls, title, err := h.resolveList(r, false)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	ls.ToggleCompleted(r.Context(), mux.Vars(r)["id"])
	h.writeSnapshot(w, r, ls, title)
}

// DeleteItem handles DELETE /api/v1/lists/{list}/items/{id} requests.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ls, title, err := h.resolveList(r, false)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	ls.Delete(r.Context(), mux.Vars(r)["id"])
	h.writeSnapshot(w, r, ls, title)
}

// ShareList handles GET /api/v1/lists/{list}/share requests.
func (h *RESTHandler) ShareList(w http.ResponseWriter, r *http.Request) {
	ls, title, err := h.resolveList(r, true)
	if err != nil {
		h.handleListError(w, err)
		return
	}

	text := store.ShareText(title, ls.Load(r.Context()))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Error("failed to write share text", zap.Error(err))
	}
}

// resolveList maps the {list} path value to its ListStore and title.
// With seed set, a preset list is seeded the first time it is opened.
func (h *RESTHandler) resolveList(r *http.Request, seed bool) (*store.ListStore, string, error) {
	name := mux.Vars(r)["list"]
	if name == DefaultList {
		return h.lists.List(catalog.DefaultStorageKey), DefaultListTitle, nil
	}

	preset, ok := h.catalog.Get(name)
	if !ok {
		return nil, "", errUnknownList
	}

	ls := h.lists.List(catalog.StorageKey(name))
	if seed && ls.SeedOnce(r.Context(), preset.Items) {
		h.logger.Info("preset list seeded",
			zap.String("preset", name),
			zap.Int("items", len(preset.Items)),
		)
	}

	return ls, preset.Name, nil
}

// decodeInput reads and normalizes an ItemInput body. On failure it has
// already written the error response.
func (h *RESTHandler) decodeInput(w http.ResponseWriter, r *http.Request) (model.ItemInput, bool) {
	var input model.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		if errors.Is(err, model.ErrInvalidCategory) {
			h.writeError(w, http.StatusBadRequest, err.Error())
		} else {
			h.writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return model.ItemInput{}, false
	}

	if input.Category == "" {
		input.Category = categorize.Categorize(input.Name)
	}
	input.Normalize()

	if err := input.Validate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return model.ItemInput{}, false
	}

	return input, true
}

// writeSnapshot writes the full, unfiltered list.
func (h *RESTHandler) writeSnapshot(
	w http.ResponseWriter, r *http.Request, ls *store.ListStore, title string,
) {
	items := ls.Load(r.Context())
	response := newListResponse(mux.Vars(r)["list"], title, model.FilterAll, items, false)
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

func newListResponse(
	list, title string, mode model.FilterMode, items []model.GroceryItem, grouped bool,
) ListResponse {
	visible := store.Filter(items, mode)
	response := ListResponse{
		List:    list,
		Title:   title,
		Filter:  mode,
		Items:   visible,
		Summary: store.Summarize(items),
	}

	if grouped {
		buckets := store.GroupByCategory(visible)
		response.Groups = make([]CategoryGroup, 0, len(buckets))
		for _, c := range model.Categories() {
			if len(buckets[c]) == 0 {
				continue
			}
			response.Groups = append(response.Groups, CategoryGroup{
				Category: c,
				Emoji:    c.Emoji(),
				Items:    buckets[c],
			})
		}
	}

	return response
}

// handleListError writes the response for a list that cannot be resolved.
func (h *RESTHandler) handleListError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownList) {
		h.writeError(w, http.StatusNotFound, "list not found")
		return
	}
	h.logger.Error("list resolution failed", zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

// handleInputError maps store validation errors to HTTP responses.
func (h *RESTHandler) handleInputError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmptyName), errors.Is(err, model.ErrInvalidCategory):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		h.logger.Warn("grocery list unavailable", zap.Error(err))
		h.writeError(w, http.StatusServiceUnavailable, "grocery list unavailable, try again")
	default:
		h.logger.Error("store operation failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error response with the given status code and message.
func (h *RESTHandler) writeError(w http.ResponseWriter, status int, message string) {
	response := model.ErrorResponse{
		Code:    status,
		Message: message,
	}
	h.writeJSON(w, status, response)
}
