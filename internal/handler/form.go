package handler

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"book-recommender/backend/internal/agent/sanitize"
	"book-recommender/backend/internal/model"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// formInput mirrors the form fields. Paragraphs stays a string so a blank
// field falls back to the default instead of failing binding.
type formInput struct {
	Genre      string `form:"genre"`
	Language   string `form:"language"`
	Region     string `form:"region"`
	Exclude    string `form:"exclude"`
	Paragraphs string `form:"paragraphs"`
	Reset      string `form:"reset"`
}

type pageData struct {
	Genre          string
	Language       string
	Region         string
	Exclude        string
	Paragraphs     int
	Regions        []model.Region
	MinParagraphs  int
	MaxParagraphs  int
	Recommendation *model.Recommendation
	History        []string
	Error          string
}

func newPageData(in formInput) pageData {
	region := strings.TrimSpace(in.Region)
	if region == "" {
		region = string(model.RegionNoPreference)
	}
	return pageData{
		Genre:         in.Genre,
		Language:      in.Language,
		Region:        region,
		Exclude:       in.Exclude,
		Paragraphs:    model.DefaultParagraphs,
		Regions:       model.Regions(),
		MinParagraphs: model.MinParagraphs,
		MaxParagraphs: model.MaxParagraphs,
	}
}

// HandleIndex renders the form and, when genre and language are filled in,
// one recommendation below it. Serves GET and POST.
func HandleIndex(c *gin.Context) {
	var in formInput
	if err := c.ShouldBind(&in); err != nil {
		page := newPageData(formInput{})
		page.Error = "Invalid form submission"
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}
	page := newPageData(in)

	rec := currentRecommender()
	if rec == nil {
		page.Error = "Recommendation service is not available"
		c.HTML(http.StatusServiceUnavailable, "index.html", page)
		return
	}

	ctx := c.Request.Context()
	sessionID, _ := resolveSession(c, nil)

	if in.Reset != "" {
		if err := rec.Reset(ctx, sessionID); err != nil {
			log.Printf("[ERROR] %v", err)
		}
		c.HTML(http.StatusOK, "index.html", newPageData(formInput{}))
		return
	}

	paragraphs, err := parseParagraphs(in.Paragraphs)
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}
	page.Paragraphs = paragraphs

	prefs, err := sanitize.Preferences(in.Genre, in.Language, in.Region, in.Exclude, paragraphs)
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	httpStatus := http.StatusOK
	result, err := rec.Recommend(ctx, sessionID, prefs)
	if err != nil {
		var message string
		httpStatus, _, message = classifyError(err)
		log.Printf("[ERROR] Recommendation error: %v", err)
		page.Error = message
	}
	page.Recommendation = result
	page.History = sessionHistory(ctx, rec, sessionID)

	c.HTML(httpStatus, "index.html", page)
}

var errParagraphsNotNumber = errors.New("paragraphs must be a whole number")

// parseParagraphs reads the paragraph field, blank means the default
func parseParagraphs(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DefaultParagraphs, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errParagraphsNotNumber
	}
	return n, nil
}
