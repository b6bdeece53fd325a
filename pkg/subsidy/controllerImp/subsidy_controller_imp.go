package controllerImp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	"greenlands/pkg/middleware"
	"greenlands/pkg/subsidy/repository"
)

const maxImportBytes = 1500000

type SubsidyCtrl struct {
	repo  repository.SubsidyRepository
	allow map[string]bool
}

func New(repo repository.SubsidyRepository, allowedDomains []string) *SubsidyCtrl {
	allow := map[string]bool{}
	for _, h := range allowedDomains {
		allow[strings.ToLower(h)] = true
	}
	return &SubsidyCtrl{repo: repo, allow: allow}
}

func (h *SubsidyCtrl) List(c echo.Context) error {
	subsidies, err := h.repo.All()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, subsidies)
}

type applyReq struct {
	SubsidyID       uint           `json:"subsidyId"`
	ApplicationData map[string]any `json:"applicationData"`
}

func (h *SubsidyCtrl) Apply(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if req.SubsidyID == 0 {
		return apperr.Validation(c, "Subsidy ID is required")
	}
	if _, err := h.repo.FindByID(req.SubsidyID); err != nil {
		return apperr.NotFound(c, "Subsidy not found")
	}
	app := &entities.SubsidyApplication{
		SubsidyID:       req.SubsidyID,
		FarmerID:        ident.ID,
		ApplicationData: req.ApplicationData,
		Status:          "pending",
	}
	if err := h.repo.CreateApplication(app); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "application": app})
}

type importReq struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Eligibility string `json:"eligibility"`
	Deadline    string `json:"deadline"` // 2006-01-02
}

// Import drafts a subsidy from an allow-listed government announcement page.
// Admin-only via the route gate.
func (h *SubsidyCtrl) Import(c echo.Context) error {
	var req importReq
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return apperr.Validation(c, "url required")
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return apperr.Validation(c, "bad url")
	}
	if !h.allow[strings.ToLower(u.Host)] {
		return apperr.Forbidden(c)
	}

	text, title, err := fetchMainText(req.URL, maxImportBytes)
	if err != nil {
		return apperr.JSON(c, http.StatusBadGateway, apperr.CodeServer, err.Error())
	}
	if req.Name != "" {
		title = req.Name
	}
	if len(text) > 2000 {
		text = text[:2000]
	}

	deadline := time.Now().AddDate(0, 1, 0)
	if req.Deadline != "" {
		if d, err := time.Parse("2006-01-02", req.Deadline); err == nil {
			deadline = d
		}
	}
	eligibility := req.Eligibility
	if eligibility == "" {
		eligibility = "See source announcement."
	}

	s := &entities.Subsidy{
		Name:                title,
		Description:         text,
		Eligibility:         eligibility,
		ApplicationDeadline: deadline,
		SourceURL:           req.URL,
	}
	if err := h.repo.Create(s); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func fetchMainText(u string, maxBytes int) (string, string, error) {
	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Get(u)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.ContentLength > 0 && resp.ContentLength > int64(maxBytes) {
		return "", "", fmt.Errorf("page too large")
	}
	limited := io.LimitedReader{R: resp.Body, N: int64(maxBytes)}
	b, err := io.ReadAll(&limited)
	if err != nil {
		return "", "", err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") {
		return "", "", fmt.Errorf("unsupported content-type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n"), title, nil
}
