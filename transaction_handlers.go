package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"aqso/pkg/spreadsheet"
	"aqso/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	txNotFound      = "Transaction not found"
)

// respondError maps service errors onto the HTTP error bodies.
func (s *server) respondError(c *gin.Context, notFound string, err error) {
	var (
		verr *service.ValidationError
		nerr *service.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		missing := verr.Missing
		if missing == nil {
			missing = []string{}
		}
		body := gin.H{"message": verr.Message, "missing": missing}
		if len(verr.Invalid) > 0 {
			body["invalid"] = verr.Invalid
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &nerr):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
	default:
		s.serverError(c, "request failed", err)
	}
}

// paramID parses :id. An id that is not a positive integer cannot name a record.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON decodes a JSON body into dst. An empty body leaves dst at
// its zero value so the service reports what is missing.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return false
	}
	return true
}

func (s *server) listTransactionsHandler(c *gin.Context) {
	txs, err := s.transactions.List(c.Request.Context())
	if err != nil {
		s.respondError(c, txNotFound, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (s *server) createTransactionHandler(c *gin.Context) {
	var in service.CreateTransactionInput
	if !bindOptionalJSON(c, &in) {
		return
	}
	tx, err := s.transactions.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, txNotFound, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (s *server) updateTransactionHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": txNotFound})
		return
	}
	var patch service.TransactionPatch
	if !bindOptionalJSON(c, &patch) {
		return
	}
	tx, err := s.transactions.Update(c.Request.Context(), id, patch)
	if err != nil {
		s.respondError(c, txNotFound, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (s *server) deleteTransactionHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": txNotFound})
		return
	}
	tx, err := s.transactions.Delete(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, txNotFound, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "transaction": tx})
}

func (s *server) exportTransactionsHandler(c *gin.Context) {
	txs, err := s.transactions.List(c.Request.Context())
	if err != nil {
		s.respondError(c, txNotFound, err)
		return
	}
	buf := &bytes.Buffer{}
	if err := spreadsheet.WriteTransactions(buf, txs); err != nil {
		s.serverError(c, "export transactions", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, spreadsheet.ExportFileName(time.Now())))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// importTransactionsHandler creates transactions from an uploaded workbook.
// Rows that cannot be read or fail validation are reported, not fatal.
func (s *server) importTransactionsHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file missing"})
		return
	}
	src, err := file.Open()
	if err != nil {
		s.serverError(c, "open upload", err)
		return
	}
	defer src.Close()

	rows, problems, err := spreadsheet.ReadTransactions(src)
	if errors.Is(err, spreadsheet.ErrEmptyWorkbook) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File tidak berisi data transaksi"})
		return
	}
	if err != nil {
		s.log.Warn("unreadable workbook", zap.String("file", file.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "File tidak dapat dibaca sebagai Excel"})
		return
	}
	res, err := s.transactions.Import(c.Request.Context(), rows)
	if err != nil {
		s.respondError(c, txNotFound, err)
		return
	}
	res.Errors = append(append([]string{}, problems...), res.Errors...)
	status := http.StatusOK
	if len(res.Created) > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"message": fmt.Sprintf("%d transaksi diimpor", len(res.Created)),
		"created": res.Created,
		"errors":  res.Errors,
	})
}
