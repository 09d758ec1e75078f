package backendstub

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
	"github.com/gin-gonic/gin"
)

const summaryLength = 200

var notFound = gin.H{"detail": "Not found."}

func (s *Server) registerRoutes(api *gin.RouterGroup) {
	api.POST("/token/", s.login)
	api.POST("/token/refresh/", s.refresh)

	authed := api.Group("/", s.requireAuth())

	authed.GET("/projects/", s.listProjects)
	authed.POST("/projects/", s.createProject)
	authed.GET("/projects/:id/", s.getProject)
	authed.PATCH("/projects/:id/", s.updateProject)
	authed.DELETE("/projects/:id/", s.deleteProject)
	authed.POST("/projects/:id/duplicate/", s.duplicateProject)
	authed.GET("/projects/:id/document/", s.getDraft)
	authed.POST("/projects/:id/document/", s.saveDraft)

	authed.GET("/documents/", s.listDocuments)
	authed.POST("/documents/", s.createDocument)
	authed.GET("/documents/:id/", s.getDocument)
	authed.PATCH("/documents/:id/", s.updateDocument)
	authed.DELETE("/documents/:id/", s.deleteDocument)

	authed.GET("/notes/", s.listNotes)
	authed.POST("/notes/", s.createNote)
	authed.PATCH("/notes/:id/", s.updateNote)
	authed.DELETE("/notes/:id/", s.deleteNote)

	authed.GET("/resources/", s.listResources)
	authed.POST("/resources/", s.uploadResource)
	authed.POST("/resources/:id/extract/", s.extractResource)
	authed.POST("/resources/:id/summarize/", s.summarizeResource)
	authed.DELETE("/resources/:id/", s.deleteResource)

	authed.POST("/chat/", s.chat)
	authed.GET("/chat/contexts/", s.chatContexts)
}

// validationBody renders field errors the way the backend serializers do.
func validationBody(err error) gin.H {
	var fe models.FieldErrors
	if !errors.As(err, &fe) {
		return gin.H{"detail": err.Error()}
	}
	out := gin.H{}
	for k, v := range fe {
		out[k] = []string{v}
	}
	return out
}

func bindValid[T interface{ Validate() error }](c *gin.Context, v *T) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return false
	}
	if err := (*v).Validate(); err != nil {
		c.JSON(http.StatusBadRequest, validationBody(err))
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}

func projectFilter(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Query("project"), 10, 64)
	return id
}

func respond[T any](c *gin.Context, status int, v T, ok bool) {
	if !ok {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	c.JSON(status, v)
}

func noContent(c *gin.Context, ok bool) {
	if !ok {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return
	}
	if err := creds.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, validationBody(err))
		return
	}
	if !s.checkPassword(creds.Username, creds.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	access, refresh, err := s.IssueTokens(creds.Username, s.accessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.TokenPair{Access: access, Refresh: refresh})
}

func (s *Server) refresh(c *gin.Context) {
	s.refreshCalls.Add(1)

	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"refresh": []string{"This field is required."}})
		return
	}

	user, err := GetUserIDFromToken(req.Refresh, tokenTypeRefresh, s.secret, s.now())
	if err != nil || s.isRevoked(req.Refresh) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}

	access, err := GenerateToken(user, tokenTypeAccess, s.secret, s.now(), s.accessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (s *Server) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.listProjects(currentUser(c)))
}

func (s *Server) createProject(c *gin.Context) {
	var in models.NewProject
	if !bindValid(c, &in) {
		return
	}
	c.JSON(http.StatusCreated, s.data.createProject(currentUser(c), in, s.now()))
}

func (s *Server) getProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := s.data.getProject(currentUser(c), id)
	respond(c, http.StatusOK, p, ok)
}

func (s *Server) updateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.ProjectPatch
	if !bindValid(c, &patch) {
		return
	}
	p, ok := s.data.updateProject(currentUser(c), id, patch, s.now())
	respond(c, http.StatusOK, p, ok)
}

func (s *Server) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	noContent(c, s.data.deleteProject(currentUser(c), id))
}

func (s *Server) duplicateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := s.data.duplicateProject(currentUser(c), id, s.now())
	respond(c, http.StatusCreated, p, ok)
}

func (s *Server) getDraft(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, ok := s.data.getDraft(currentUser(c), id)
	respond(c, http.StatusOK, d, ok)
}

func (s *Server) saveDraft(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return
	}
	d, ok := s.data.saveDraft(currentUser(c), id, req.Content, s.now())
	respond(c, http.StatusOK, d, ok)
}

func (s *Server) listDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.listDocuments(currentUser(c), projectFilter(c)))
}

func (s *Server) createDocument(c *gin.Context) {
	var in models.NewDocument
	if !bindValid(c, &in) {
		return
	}
	d, ok := s.data.createDocument(currentUser(c), in, s.now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"project": []string{"Invalid project"}})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (s *Server) getDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, ok := s.data.getDocument(currentUser(c), id)
	respond(c, http.StatusOK, d, ok)
}

func (s *Server) updateDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.DocumentPatch
	if !bindValid(c, &patch) {
		return
	}
	d, ok := s.data.updateDocument(currentUser(c), id, patch, s.now())
	respond(c, http.StatusOK, d, ok)
}

func (s *Server) deleteDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	noContent(c, s.data.deleteDocument(currentUser(c), id))
}

func (s *Server) listNotes(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.listNotes(currentUser(c), projectFilter(c)))
}

func (s *Server) createNote(c *gin.Context) {
	var in models.NewNote
	if !bindValid(c, &in) {
		return
	}
	n, ok := s.data.createNote(currentUser(c), in, s.now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"project": []string{"Invalid project"}})
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) updateNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.NotePatch
	if !bindValid(c, &patch) {
		return
	}
	n, ok := s.data.updateNote(currentUser(c), id, patch, s.now())
	respond(c, http.StatusOK, n, ok)
}

func (s *Server) deleteNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	noContent(c, s.data.deleteNote(currentUser(c), id))
}

func (s *Server) listResources(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.listResources(currentUser(c), projectFilter(c)))
}

func (s *Server) uploadResource(c *gin.Context) {
	if ct := c.ContentType(); ct != "multipart/form-data" {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"detail": fmt.Sprintf("Unsupported media type %q in request.", ct)})
		return
	}

	project, _ := strconv.ParseInt(c.PostForm("project"), 10, 64)
	fh, err := c.FormFile("file")
	if err != nil || project <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"file": []string{"No file was submitted."}})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"file": []string{err.Error()}})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"file": []string{err.Error()}})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fh.Filename
	}
	r, ok := s.data.createResource(currentUser(c), models.Resource{
		Project:     project,
		Title:       title,
		File:        "/media/resources/" + fh.Filename,
		FileType:    models.ResourceTypeOf(fh.Filename),
		Description: c.PostForm("description"),
		UploadedAt:  s.now(),
	}, data)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"project": []string{"Invalid project"}})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) extractResource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	now := s.now()
	r, ok := s.data.withResource(currentUser(c), id, func(r *models.Resource, data []byte) {
		var text, failure string
		if utf8.Valid(data) {
			text = string(data)
		} else {
			failure = "Unsupported file type: application/octet-stream"
		}
		r.ContentExtracted, r.ExtractionError, r.LastExtracted = &text, &failure, &now
	})
	respond(c, http.StatusOK, r, ok)
}

func (s *Server) summarizeResource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	now := s.now()
	var out models.ResourceSummary
	_, ok = s.data.withResource(currentUser(c), id, func(r *models.Resource, data []byte) {
		source := string(data)
		if r.ContentExtracted != nil && *r.ContentExtracted != "" {
			source = *r.ContentExtracted
		}
		summary := summarize(source)
		r.Summary, r.LastSummarized = &summary, &now
		out = models.ResourceSummary{Summary: summary, LastSummarized: &now}
	})
	respond(c, http.StatusOK, out, ok)
}

func (s *Server) deleteResource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	noContent(c, s.data.deleteResource(currentUser(c), id))
}

func (s *Server) chat(c *gin.Context) {
	var req models.ChatRequest
	if !bindValid(c, &req) {
		return
	}
	if _, ok := s.data.getProject(currentUser(c), req.Project); !ok {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	reply := fmt.Sprintf("You asked: %s", req.Message)
	if len(req.Contexts) > 0 {
		reply += fmt.Sprintf(" (using %s)", strings.Join(req.Contexts, ", "))
	}
	c.JSON(http.StatusOK, models.ChatReply{Role: models.RoleAssistant, Content: reply})
}

func (s *Server) chatContexts(c *gin.Context) {
	p, ok := s.data.getProject(currentUser(c), projectFilter(c))
	if !ok {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	out := []models.ChatContext{}
	for _, d := range p.Documents {
		out = append(out, models.ChatContext{ID: fmt.Sprintf("document-%d", d.ID), Type: "document", Title: d.Title})
	}
	for _, n := range p.Notes {
		out = append(out, models.ChatContext{ID: fmt.Sprintf("note-%d", n.ID), Type: "note", Title: n.Title})
	}
	for _, r := range p.Resources {
		out = append(out, models.ChatContext{ID: fmt.Sprintf("resource-%d", r.ID), Type: "resource", Title: r.Title})
	}
	c.JSON(http.StatusOK, out)
}

func summarize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= summaryLength {
		return text
	}
	return string([]rune(text)[:summaryLength]) + "..."
}
