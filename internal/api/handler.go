// Package api provides the HTTP handlers of the sentimento service.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tsawler/sentimento"
	"github.com/tsawler/sentimento/internal/telemetry"
	"golang.org/x/time/rate"
)

// maxUploadBytes bounds the size of an uploaded dataset.
const maxUploadBytes = 10 << 20

// Service defines the session operations needed by the handler.
type Service interface {
	Classify(strategy sentimento.Strategy, text string) (sentimento.Classification, error)
	Load(ctx context.Context, ds *sentimento.Dataset) (sentimento.LoadReport, error)
	Stats() (sentimento.Stats, error)
	Products() ([]string, error)
	Reviews(product string) ([]sentimento.Card, error)
}

// Handler serves the classification and dataset endpoints.
type Handler struct {
	svc           Service
	metrics       *telemetry.Metrics
	uploadLimiter *rate.Limiter
}

// HandlerOpt configures a Handler.
type HandlerOpt func(*Handler)

// WithUploadLimit allows perSecond dataset uploads on average with bursts of
// up to burst. Uploads are unlimited without it.
func WithUploadLimit(perSecond float64, burst int) HandlerOpt {
	return func(h *Handler) {
		if burst <= 0 {
			burst = 1
		}
		h.uploadLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewHandler creates a new handler. A nil metrics gets a private set.
func NewHandler(svc Service, metrics *telemetry.Metrics, opts ...HandlerOpt) *Handler {
	if metrics == nil {
		metrics = telemetry.NewMetrics()
	}
	h := &Handler{svc: svc, metrics: metrics}
	for _, applyOpt := range opts {
		applyOpt(h)
	}
	return h
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
		return
	}

	strategy, parseErr := sentimento.ParseStrategy(req.Strategy)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
		return
	}

	result, err := h.svc.Classify(strategy, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.Classifications.WithLabelValues(string(strategy), result.Label.String()).Inc()

	c.JSON(http.StatusOK, result)
}

// UploadDataset handles POST /api/v1/dataset. The table is read from the
// multipart field "file" or, for any other content type, from the body. A
// .xlsx file name or the XLSX content type selects the spreadsheet reader.
func (h *Handler) UploadDataset(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	body, closeBody, openErr := datasetBody(c)
	if openErr != nil {
		respondError(c, openErr)
		return
	}
	defer closeBody()

	read := sentimento.ReadDataset
	if body.spreadsheet {
		read = sentimento.ReadSpreadsheet
	}
	ds, readErr := read(body)
	if readErr != nil {
		h.metrics.DatasetUploads.WithLabelValues("rejected").Inc()
		respondError(c, readErr)
		return
	}

	report, loadErr := h.svc.Load(c.Request.Context(), ds)
	if loadErr != nil {
		respondError(c, loadErr)
		return
	}
	h.observeLoad(report)

	c.JSON(http.StatusOK, report)
}

func (h *Handler) observeLoad(report sentimento.LoadReport) {
	h.metrics.DatasetRows.Observe(float64(report.Rows))
	switch {
	case report.Cached:
		h.metrics.DatasetUploads.WithLabelValues("cached").Inc()
	case report.Trained:
		h.metrics.DatasetUploads.WithLabelValues("trained").Inc()
		h.metrics.ObserveTraining(report.Metrics.TrainingTime, report.Metrics.HeldOutAccuracy)
	default:
		h.metrics.DatasetUploads.WithLabelValues("untrained").Inc()
	}
}

type upload struct {
	io.Reader
	spreadsheet bool
}

func datasetBody(c *gin.Context) (upload, func(), error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return upload{
			Reader:      c.Request.Body,
			spreadsheet: c.ContentType() == sentimento.SpreadsheetContentType,
		}, func() {}, nil
	}

	header, formErr := c.FormFile("file")
	if formErr != nil {
		return upload{}, nil, formErr
	}
	f, err := header.Open()
	if err != nil {
		return upload{}, nil, err
	}
	return upload{Reader: f, spreadsheet: sentimento.IsSpreadsheet(header.Filename)}, func() { _ = f.Close() }, nil
}

// Stats handles GET /api/v1/dataset/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Products handles GET /api/v1/dataset/products.
func (h *Handler) Products(c *gin.Context) {
	products, err := h.svc.Products()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Reviews handles GET /api/v1/dataset/reviews. The optional produto query
// parameter filters by product.
func (h *Handler) Reviews(c *gin.Context) {
	product := c.Query("produto")
	cards, err := h.svc.Reviews(product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"produto": product,
		"count":   len(cards),
		"reviews": cards,
	})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, sentimento.ErrMissingTextColumn),
		errors.Is(err, sentimento.ErrEmptyDataset),
		errors.Is(err, sentimento.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sentimento.ErrNoDataset),
		errors.Is(err, sentimento.ErrNoModel):
		return http.StatusConflict
	case errors.Is(err, sentimento.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}
