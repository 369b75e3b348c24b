package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/dmmy/internal/logger"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

// DefaultMaxDocumentBytes bounds request bodies when Config leaves it unset.
const DefaultMaxDocumentBytes = 64 << 20

type Config struct {
	MaxDocumentBytes int64
	Logger           logger.Logger
}

type Server struct {
	store    *DocumentStore
	maxBytes int64
	log      logger.Logger
	clock    func() time.Time
}

func NewServer(store *DocumentStore, cfg Config) *Server {
	if store == nil {
		store = NewDocumentStore(0)
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &Server{
		store:    store,
		maxBytes: cfg.MaxDocumentBytes,
		log:      cfg.Logger,
		clock:    time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/documents", s.handleCreateDocument)
	e.POST("/v1/documents/verify", s.handleVerifyDocument)
	e.GET("/v1/documents/:id", s.handleGetDocument)
	e.GET("/v1/documents/:id/pages/:index", s.handleGetPage)
	e.DELETE("/v1/documents/:id", s.handleDeleteDocument)
}

func (s *Server) handleCreateDocument(c *echo.Context) error {
	body, err := s.readBody(c)
	if err != nil {
		return s.writeBodyError(c, err)
	}
	log := s.log.With("size", len(body))
	layout, doc, err := ntuple.ParseWithLayout(body, ntuple.WithLogger(log))
	if err != nil {
		log.Warn("rejected document", "error", err)
		return writeDecodeError(c, err)
	}
	summary := s.store.Create(layout, doc, len(body), s.clock())
	log.Info("stored document", "id", summary.ID, "name", doc.Name, "pages", summary.PageCount)
	return writeJSON(c, http.StatusCreated, summary)
}

func (s *Server) handleVerifyDocument(c *echo.Context) error {
	body, err := s.readBody(c)
	if err != nil {
		return s.writeBodyError(c, err)
	}
	if _, err := ntuple.Parse(body); err != nil {
		e := decodeError(err)
		return writeJSON(c, http.StatusOK, VerifyResponse{Object: "verification", Valid: false, Error: &e})
	}
	return writeJSON(c, http.StatusOK, VerifyResponse{Object: "verification", Valid: true})
}

func (s *Server) handleGetDocument(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "document not found")
	}
	return writeJSON(c, http.StatusOK, rec.Summary)
}

func (s *Server) handleGetPage(c *echo.Context) error {
	id := c.Param("id")
	rec, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "document not found")
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("invalid page index %q", c.Param("index")))
	}
	if index < 0 || index >= len(rec.Document.Pages) {
		return writeNotFound(c, fmt.Sprintf("page %d not found", index))
	}
	return writeJSON(c, http.StatusOK, PageResponse{
		Object:     "page",
		DocumentID: id,
		Index:      index,
		Elements:   Elements(rec.Document.Pages[index]),
	})
}

func (s *Server) handleDeleteDocument(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "document not found")
	}
	return writeJSON(c, http.StatusOK, DeleteDocumentResponse{
		ID:      id,
		Object:  "document",
		Deleted: true,
	})
}

type bodyTooLargeError struct {
	limit int64
}

func (e bodyTooLargeError) Error() string {
	return fmt.Sprintf("document exceeds %d bytes", e.limit)
}

func (s *Server) readBody(c *echo.Context) ([]byte, error) {
	req := c.Request()
	if req.Body == nil {
		return nil, newInvalidRequest("request body is required")
	}
	body, err := io.ReadAll(io.LimitReader(req.Body, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxBytes {
		return nil, bodyTooLargeError{limit: s.maxBytes}
	}
	if len(body) == 0 {
		return nil, newInvalidRequest("request body is empty")
	}
	return body, nil
}

func (s *Server) writeBodyError(c *echo.Context, err error) error {
	switch e := err.(type) {
	case bodyTooLargeError:
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", e.Error(), "document_too_large")
	case invalidRequestError:
		return writeBadRequest(c, e.Error())
	default:
		s.log.Error("read request body", "error", err)
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "")
	}
}

func writeDecodeError(c *echo.Context, err error) error {
	return writeJSON(c, http.StatusUnprocessableEntity, errorEnvelope{Error: decodeError(err)})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "")
}

func writeError(c *echo.Context, status int, errType, msg, code string) error {
	return writeJSON(c, status, errorEnvelope{Error: ResponseError{
		Message: msg,
		Type:    errType,
		Code:    code,
	}})
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}
