package web

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/store"
)

const component = "web"

// maxStyleBytes bounds request bodies; saved styles may carry a base64 PNG.
const maxStyleBytes = 4 << 20

// HeaderLastUpdate carries the render time of a bank image in unix milliseconds.
const HeaderLastUpdate = "X-Last-Update"

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type pushRequest struct {
	Pressed bool `json:"pressed"`
}

type pushResponse struct {
	Pushed bool `json:"pushed"`
}

type pageNameRequest struct {
	Name string `json:"name"`
}

type userConfigRequest struct {
	Value bool `json:"value"`
}

type pageImage struct {
	Bank    int                 `json:"bank"`
	Updated int64               `json:"updated"`
	Style   *graphics.BankStyle `json:"style,omitempty"`
	PNG     string              `json:"png"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /banks/{page}/{bank}", func(w http.ResponseWriter, r *http.Request) { handleBankImage(w, r, deps) })
	mux.HandleFunc("GET /banks/{page}/{bank}/style", func(w http.ResponseWriter, r *http.Request) { handleBankStyle(w, r, deps) })
	mux.HandleFunc("PUT /banks/{page}/{bank}", func(w http.ResponseWriter, r *http.Request) { handleSaveBank(w, r, deps) })
	mux.HandleFunc("DELETE /banks/{page}/{bank}", func(w http.ResponseWriter, r *http.Request) { handleDeleteBank(w, r, deps) })
	mux.HandleFunc("GET /banks/{page}/{bank}/push", func(w http.ResponseWriter, r *http.Request) { handleIsPushed(w, r, deps) })
	mux.HandleFunc("POST /banks/{page}/{bank}/push", func(w http.ResponseWriter, r *http.Request) { handlePush(w, r, deps) })
	mux.HandleFunc("GET /pages/{page}", func(w http.ResponseWriter, r *http.Request) { handlePage(w, r, deps) })
	mux.HandleFunc("PUT /pages/{page}/name", func(w http.ResponseWriter, r *http.Request) { handlePageName(w, r, deps) })
	mux.HandleFunc("PUT /userconfig/{key}", func(w http.ResponseWriter, r *http.Request) { handleUserConfig(w, r, deps) })
	mux.HandleFunc("POST /preview", func(w http.ResponseWriter, r *http.Request) { handlePreview(w, r, deps) })
	mux.HandleFunc("GET /pincode/{index}", func(w http.ResponseWriter, r *http.Request) { handlePincode(w, r, deps) })
	return mux
}

// coordinate reads {page} and {bank} and checks them against the grid.
func coordinate(w http.ResponseWriter, r *http.Request, deps APIV1Deps) (graphics.Coordinate, bool) {
	page, err1 := strconv.Atoi(r.PathValue("page"))
	bank, err2 := strconv.Atoi(r.PathValue("bank"))
	if err1 != nil || err2 != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_coordinate", "page and bank must be numbers")
		return graphics.Coordinate{}, false
	}
	c := graphics.Coordinate{Page: page, Bank: bank}
	if !deps.Renderer.InGrid(c) {
		writeAPIError(w, http.StatusNotFound, "not_found", fmt.Sprintf("bank %s does not exist", c))
		return graphics.Coordinate{}, false
	}
	return c, true
}

func pageNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	page, err := strconv.Atoi(r.PathValue("page"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_page", "page must be a number")
		return 0, false
	}
	if page < 1 || page > graphics.MaxPages {
		writeAPIError(w, http.StatusNotFound, "not_found", fmt.Sprintf("page %d does not exist", page))
		return 0, false
	}
	return page, true
}

func handleBankImage(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	c, ok := coordinate(w, r, deps)
	if !ok {
		return
	}
	writePNG(w, deps.Renderer.GetBank(c.Page, c.Bank), deps)
}

func handleBankStyle(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	c, ok := coordinate(w, r, deps)
	if !ok {
		return
	}
	img := deps.Renderer.GetBank(c.Page, c.Bank)
	if img.Style == nil {
		writeAPIError(w, http.StatusNotFound, "no_style", fmt.Sprintf("bank %s has no custom style", c))
		return
	}
	writeJSON(w, http.StatusOK, img.Style)
}

func handleSaveBank(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	c, ok := coordinate(w, r, deps)
	if !ok {
		return
	}
	var style graphics.BankStyle
	if !decodeBody(w, r, &style) {
		return
	}
	if err := deps.Store.SaveBank(c.Page, c.Bank, style); err != nil {
		writeStoreError(w, err, deps)
		return
	}
	deps.Renderer.Invalidate(c.Page, c.Bank)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleDeleteBank(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	c, ok := coordinate(w, r, deps)
	if !ok {
		return
	}
	if err := deps.Store.DeleteBank(c.Page, c.Bank); err != nil {
		writeStoreError(w, err, deps)
		return
	}
	deps.Renderer.Invalidate(c.Page, c.Bank)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleIsPushed(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	c, ok := coordinate(w, r, deps)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pushResponse{Pushed: deps.Renderer.IsPushed(c.Page, c.Bank)})
}

func handlePush(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	c, ok := coordinate(w, r, deps)
	if !ok {
		return
	}
	var req pushRequest
	if !decodeBody(w, r, &req) {
		return
	}
	deps.Renderer.IndicatePush(c.Page, c.Bank, req.Pressed)
	writeJSON(w, http.StatusOK, pushResponse{Pushed: req.Pressed})
}

func handlePage(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	page, ok := pageNumber(w, r)
	if !ok {
		return
	}
	images := deps.Renderer.GetImagesForPage(page)
	resp := make([]pageImage, 0, len(images))
	for i, img := range images {
		data, err := encodePNG(img)
		if err != nil {
			deps.Logger.Errorf(component, "page %d bank %d: %v", page, i+1, err)
			writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
			return
		}
		resp = append(resp, pageImage{
			Bank:    i + 1,
			Updated: img.Updated.UnixMilli(),
			Style:   img.Style,
			PNG:     base64.StdEncoding.EncodeToString(data),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handlePageName(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	page, ok := pageNumber(w, r)
	if !ok {
		return
	}
	var req pageNameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := deps.Store.SetPageName(page, req.Name); err != nil {
		writeStoreError(w, err, deps)
		return
	}
	deps.Renderer.PageNameChanged(page, req.Name)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleUserConfig(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	key := r.PathValue("key")
	var req userConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := deps.Store.SetUserConfig(key, req.Value); err != nil {
		writeStoreError(w, err, deps)
		return
	}
	deps.Renderer.SetUserConfigKey(key, req.Value)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handlePreview(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	var style graphics.BankStyle
	if !decodeBody(w, r, &style) {
		return
	}
	writePNG(w, graphics.BankImage{Buffer: deps.Renderer.Preview(style), Updated: time.Now()}, deps)
}

func handlePincode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index > graphics.LockoutIndex {
		writeAPIError(w, http.StatusNotFound, "not_found", "pincode image index must be 0-10")
		return
	}
	var code *string
	if r.URL.Query().Has("code") {
		value := r.URL.Query().Get("code")
		code = &value
	}
	set := deps.Renderer.GetImagesForPincode(code)
	writePNG(w, set[index], deps)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxStyleBytes))
	if err := dec.Decode(v); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error, deps APIV1Deps) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrOutOfRange):
		writeAPIError(w, http.StatusBadRequest, "out_of_range", err.Error())
	default:
		deps.Logger.Errorf(component, "store: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "store_failed", err.Error())
	}
}

func encodePNG(img graphics.BankImage) ([]byte, error) {
	rgba, err := img.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func writePNG(w http.ResponseWriter, img graphics.BankImage, deps APIV1Deps) {
	data, err := encodePNG(img)
	if err != nil {
		deps.Logger.Errorf(component, "%v", err)
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(HeaderLastUpdate, strconv.FormatInt(img.Updated.UnixMilli(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
