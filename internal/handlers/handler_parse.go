package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dafterhq/fulus/internal/apperrors"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/dto"
	"github.com/dafterhq/fulus/internal/emailsource"
	"github.com/dafterhq/fulus/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds uploaded email files.
const maxUploadBytes = 1 << 20

// parseHandler handles the email entry points: paste, upload and IMAP
// fetch. All three are thin wrappers feeding the same parse/ingest core.
type parseHandler struct {
	parser portssvc.ParserSvc
	ledger portssvc.LedgerSvc
	ingest portssvc.IngestSvc
}

func newParseHandler(services *portssvc.ServiceContainer) *parseHandler {
	return &parseHandler{
		parser: services.Parser,
		ledger: services.Ledger,
		ingest: services.Ingest,
	}
}

func registerParseRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newParseHandler(services)

	rg.POST("/parse", h.parsePasted)
	rg.POST("/parse/upload", h.parseUploaded)
	rg.POST("/emails/fetch", h.fetchEmails)
}

// parsePasted parses pasted email content and optionally persists the
// result.
func (h *parseHandler) parsePasted(c *gin.Context) {
	var req dto.ParseEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	source := &emailsource.PasteSource{
		Subject: req.Subject,
		From:    req.FromEmail,
		Body:    req.Body,
	}
	h.parseFromSource(c, source, req.SaveToDB)
}

// parseUploaded parses an uploaded email file (.eml or raw text) and
// optionally persists the result.
func (h *parseHandler) parseUploaded(c *gin.Context) {
	file, err := c.FormFile("email_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading file: " + err.Error()})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading file: " + err.Error()})
		return
	}

	source := &emailsource.UploadSource{
		Filename: file.Filename,
		From:     c.PostForm("from_email"),
		Content:  content,
	}
	h.parseFromSource(c, source, c.PostForm("save_to_db") == "true")
}

// parseFromSource runs a single-record source through parse and optional
// persistence.
func (h *parseHandler) parseFromSource(c *gin.Context, source portssvc.EmailSource, save bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := source.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := h.parser.Parse(records[0])
	if err != nil {
		if errors.Is(err, apperrors.ErrParseFailure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to parse email content. Make sure it contains valid transaction data."})
			return
		}
		logger.Error("Unexpected parser error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse email"})
		return
	}

	resp := dto.ParseEmailResponse{Transaction: *parsed}
	if save {
		_, created, err := h.ledger.CreateTransaction(c.Request.Context(), *parsed)
		if err != nil {
			logger.Error("Failed to save parsed transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transaction to database"})
			return
		}
		resp.Saved = true
		resp.Duplicate = !created
	}
	c.JSON(http.StatusOK, resp)
}

// fetchEmails runs a full IMAP fetch-and-ingest session with user-supplied
// settings.
func (h *parseHandler) fetchEmails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FetchEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	source := emailsource.NewIMAPSource(emailsource.IMAPConfig{
		Host:               req.Host,
		Port:               req.Port,
		Username:           req.Username,
		Password:           req.Password,
		UseSSL:             req.UseSSL,
		Folder:             req.Folder,
		UnreadOnly:         req.UnreadOnly,
		BankEmailAddresses: req.BankEmailAddresses,
		BankEmailSubjects:  req.BankEmailSubjects,
	})

	result, err := h.ingest.FetchAndIngest(c.Request.Context(), source, req.SaveToDB)
	if err != nil {
		logger.Error("Failed to fetch emails", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch emails. Check your email settings."})
		return
	}
	c.JSON(http.StatusOK, result)
}
