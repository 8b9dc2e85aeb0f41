package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/schemas"
	"github.com/jonathan/resume-fitter/internal/types"
	"github.com/jonathan/resume-fitter/internal/validation"
	"github.com/patrickmn/go-cache"
)

// maxBodyBytes bounds request bodies; a resume is a few KB
const maxBodyBytes = 1 << 20

// FitRequest represents the request body for /fit
type FitRequest struct {
	Document     json.RawMessage `json:"document" validate:"required"`
	Page         string          `json:"page,omitempty"`
	FillFraction float64         `json:"fill_fraction,omitempty" validate:"gte=0,lte=1"`
}

// FitResponse represents the response for /fit
type FitResponse struct {
	RequestID string           `json:"request_id"`
	Result    *types.FitResult `json:"result"`
	Cached    bool             `json:"cached"`
}

// SeedRequest represents the request body for /seed
type SeedRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
}

// SeedResponse represents the response for /seed
type SeedResponse struct {
	RequestID string             `json:"request_id"`
	Sizing    types.SizingConfig `json:"sizing"`
}

// EstimateRequest represents the request body for /estimate
type EstimateRequest struct {
	Document json.RawMessage     `json:"document" validate:"required"`
	Sizing   *types.SizingConfig `json:"sizing" validate:"required"`
	Page     string              `json:"page,omitempty"`
}

// EstimateResponse represents the response for /estimate
type EstimateResponse struct {
	PredictedHeight float64 `json:"predicted_height"`
	UsableHeight    float64 `json:"usable_height"`
	FillPercentage  float64 `json:"fill_percentage"`
	Overflows       bool    `json:"overflows"`
}

// handleFit fits a document to a page, memoizing results per document and page settings
func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := decodeDocument(req.Document)
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.page(req.Page)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fill := req.FillFraction
	if fill == 0 {
		fill = s.cfg.FillFraction
	}

	requestID := uuid.New().String()

	key, err := fitCacheKey(doc, page, fill)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cached, ok := s.fitCache.Get(key); ok {
		result := cached.(*types.FitResult)
		log.Printf("[fit] request=%s body=%.1f height=%.1f cached=true", requestID, result.Config.BodyFontSize, result.PredictedHeight)
		s.jsonResponse(w, http.StatusOK, FitResponse{RequestID: requestID, Result: result, Cached: true})
		return
	}

	fitter := layout.NewFitter(layout.WithGeometry(page), layout.WithFillFraction(fill))
	result, err := fitter.Fit(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := validation.Annotate(doc, result, layout.NewEstimator(page)); err != nil {
		s.writeError(w, err)
		return
	}

	s.fitCache.Set(key, result, cache.DefaultExpiration)
	log.Printf("[fit] request=%s body=%.1f height=%.1f iterations=%d emergency=%d",
		requestID, result.Config.BodyFontSize, result.PredictedHeight, result.Iterations, result.EmergencyIterations)

	s.jsonResponse(w, http.StatusOK, FitResponse{RequestID: requestID, Result: result})
}

// handleSeed returns the metrics-only sizing for a document
func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	var req SeedRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := decodeDocument(req.Document)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sizing, err := layout.SeedFromMetrics(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SeedResponse{
		RequestID: uuid.New().String(),
		Sizing:    sizing,
	})
}

// handleEstimate predicts the height of a document under a caller-supplied sizing
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Sizing.Validate(); err != nil {
		s.writeError(w, &ErrValidation{Field: "sizing", Message: err.Error()})
		return
	}

	doc, err := decodeDocument(req.Document)
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.page(req.Page)
	if err != nil {
		s.writeError(w, err)
		return
	}

	predicted := layout.NewEstimator(page).EstimateHeight(doc, *req.Sizing)
	usable := page.UsableHeight()
	s.jsonResponse(w, http.StatusOK, EstimateResponse{
		PredictedHeight: predicted,
		UsableHeight:    usable,
		FillPercentage:  math.Round(predicted/usable*1000) / 10,
		Overflows:       predicted > usable,
	})
}

// decodeRequest reads a JSON body into dst and checks its validate tags
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	if err := validator.New().Struct(dst); err != nil {
		return err
	}
	return nil
}

// page resolves a requested page name, falling back to the configured page
func (s *Server) page(name string) (layout.PageGeometry, error) {
	if name == "" {
		name = s.cfg.Page
	}
	page, err := layout.PageByName(name)
	if err != nil {
		return layout.PageGeometry{}, &ErrValidation{Field: "page", Message: err.Error()}
	}
	return page, nil
}

// writeError writes err with the status HTTPStatus assigns it
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[error] %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeDocument checks raw against the document schema before decoding it
func decodeDocument(raw json.RawMessage) (*types.Document, error) {
	if err := schemas.ValidateDocument(raw); err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ErrValidation{Field: "document", Message: err.Error()}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// fitCacheKey hashes the re-encoded document so formatting differences share an entry
func fitCacheKey(doc *types.Document, page layout.PageGeometry, fill float64) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%g|", page.Name, fill)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
