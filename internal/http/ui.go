package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/richclient/internal/security"
	"github.com/mrlokans/richclient/internal/session"
	"github.com/mrlokans/richclient/internal/store"
)

// UIController renders the HTML preview page.
type UIController struct {
	truncateLength int
	version        string
}

func NewUIController(truncateLength int, version string) *UIController {
	return &UIController{truncateLength: truncateLength, version: version}
}

// IndexPage handles GET /. The text query parameter is rendered as rich
// text, with a truncated preview and the list of links it contains.
func (u *UIController) IndexPage(c *gin.Context) {
	data := gin.H{
		"Text":           c.Query("text"),
		"TruncateLength": u.truncateLength,
		"CSRFToken":      security.GetCSRFToken(c),
		"Version":        u.version,
		"Error":          c.Query("error"),
	}
	if state := session.UIState(c); state != nil {
		data["State"] = state.Snapshot()
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// OpenAuthModalForm handles POST /ui/auth-modal from the page's buttons.
func (u *UIController) OpenAuthModalForm(c *gin.Context) {
	state := session.UIState(c)
	if state == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	mode, err := store.ParseAuthMode(c.DefaultPostForm("mode", string(store.DefaultAuthMode)))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(err.Error()))
		return
	}

	state.OpenAuthModal(mode)
	c.Redirect(http.StatusSeeOther, redirectTarget(c))
}

// CloseAuthModalForm handles POST /ui/auth-modal/close.
func (u *UIController) CloseAuthModalForm(c *gin.Context) {
	if state := session.UIState(c); state != nil {
		state.CloseAuthModal()
	}
	c.Redirect(http.StatusSeeOther, redirectTarget(c))
}

// redirectTarget keeps the preview text across form posts.
func redirectTarget(c *gin.Context) string {
	if text := c.PostForm("text"); text != "" {
		return "/?text=" + url.QueryEscape(text)
	}
	return "/"
}
