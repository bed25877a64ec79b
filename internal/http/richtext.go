package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/richclient/internal/richtext"
)

// RichTextRequest is the body accepted by the rich text endpoints. A missing
// text field is treated as empty text.
type RichTextRequest struct {
	Text string `json:"text"`
}

// RenderRequest is the body of POST /api/richtext/render.
type RenderRequest struct {
	Text   string `json:"text"`
	Escape bool   `json:"escape"` // escape HTML in text before linkifying
}

// RenderResponse carries the rendered HTML fragment.
type RenderResponse struct {
	HTML string `json:"html"`
}

// TruncateRequest is the body of POST /api/richtext/truncate. A missing
// max_length uses the configured default.
type TruncateRequest struct {
	Text      string `json:"text"`
	MaxLength *int   `json:"max_length"`
}

// TruncateResponse reports the shortened text and whether anything was cut.
type TruncateResponse struct {
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

// URLsResponse lists the URLs found in the text, in order.
type URLsResponse struct {
	URLs    []string `json:"urls"`
	HasURLs bool     `json:"has_urls"`
}

// RichTextController exposes the richtext package over HTTP.
type RichTextController struct {
	defaultMaxLength int
}

func NewRichTextController(defaultMaxLength int) *RichTextController {
	if defaultMaxLength <= 0 {
		defaultMaxLength = richtext.DefaultMaxLength
	}
	return &RichTextController{defaultMaxLength: defaultMaxLength}
}

// Render handles POST /api/richtext/render.
func (rc *RichTextController) Render(c *gin.Context) {
	var req RenderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var out string
	if req.Escape {
		out = string(richtext.RenderSafeRichText(req.Text))
	} else {
		out = richtext.RenderRichText(req.Text)
	}
	c.JSON(http.StatusOK, RenderResponse{HTML: out})
}

// Truncate handles POST /api/richtext/truncate.
func (rc *RichTextController) Truncate(c *gin.Context) {
	var req TruncateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	maxLength := rc.defaultMaxLength
	if req.MaxLength != nil {
		if *req.MaxLength < 0 {
			respondBadRequestCode(c, "invalid_max_length", "max_length must not be negative")
			return
		}
		maxLength = *req.MaxLength
	}

	out := richtext.TruncateText(req.Text, maxLength)
	c.JSON(http.StatusOK, TruncateResponse{
		Text:      out,
		Truncated: out != req.Text,
	})
}

// URLs handles POST /api/richtext/urls.
func (rc *RichTextController) URLs(c *gin.Context) {
	var req RichTextRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, URLsResponse{
		URLs:    richtext.ExtractURLs(req.Text),
		HasURLs: richtext.HasURLs(req.Text),
	})
}
