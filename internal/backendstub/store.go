package backendstub

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

// store keeps every entity in memory. Ownership is tracked per project.
type store struct {
	mu        sync.Mutex
	nextID    int64
	owners    map[int64]string
	projects  map[int64]*models.Project
	drafts    map[int64]*models.ProjectDocument
	documents map[int64]*models.Document
	notes     map[int64]*models.Note
	resources map[int64]*models.Resource
	files     map[int64][]byte
}

func newStore() *store {
	return &store{
		owners:    map[int64]string{},
		projects:  map[int64]*models.Project{},
		drafts:    map[int64]*models.ProjectDocument{},
		documents: map[int64]*models.Document{},
		notes:     map[int64]*models.Note{},
		resources: map[int64]*models.Resource{},
		files:     map[int64][]byte{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

// ownsLocked reports whether user owns project id. Callers hold s.mu.
func (s *store) ownsLocked(user string, project int64) bool {
	owner, ok := s.owners[project]
	return ok && owner == user
}

func sortedByID[T any](m map[int64]*T, keep func(*T) bool) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m[id])
	}
	return out
}

func (s *store) listProjects(user string) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.projects, func(p *models.Project) bool { return s.owners[p.ID] == user })
}

func (s *store) createProject(user string, in models.NewProject, now time.Time) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &models.Project{
		ID:          s.id(),
		Title:       in.Title,
		Description: in.Description,
		Status:      models.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		Owner:       &models.User{Username: user},
	}
	s.projects[p.ID] = p
	s.owners[p.ID] = user
	return *p
}

func (s *store) getProject(user string, id int64) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, id) {
		return models.Project{}, false
	}
	p := *s.projects[id]
	p.Notes = sortedByID(s.notes, func(n *models.Note) bool { return n.Project == id })
	p.Documents = sortedByID(s.documents, func(d *models.Document) bool { return d.Project == id })
	p.Resources = sortedByID(s.resources, func(r *models.Resource) bool { return r.Project == id })
	return p, true
}

func (s *store) updateProject(user string, id int64, patch models.ProjectPatch, now time.Time) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, id) {
		return models.Project{}, false
	}
	p := s.projects[id]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = now
	return *p, true
}

func (s *store) deleteProject(user string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, id) {
		return false
	}
	delete(s.projects, id)
	delete(s.owners, id)
	delete(s.drafts, id)
	for k, d := range s.documents {
		if d.Project == id {
			delete(s.documents, k)
		}
	}
	for k, n := range s.notes {
		if n.Project == id {
			delete(s.notes, k)
		}
	}
	for k, r := range s.resources {
		if r.Project == id {
			delete(s.resources, k)
			delete(s.files, k)
		}
	}
	return true
}

// duplicateProject copies the project with its draft and notes.
func (s *store) duplicateProject(user string, id int64, now time.Time) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, id) {
		return models.Project{}, false
	}
	src := s.projects[id]
	p := &models.Project{
		ID:          s.id(),
		Title:       src.Title + " (Copy)",
		Description: src.Description,
		Status:      models.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		Owner:       src.Owner,
	}
	s.projects[p.ID] = p
	s.owners[p.ID] = user

	if d, ok := s.drafts[id]; ok {
		cp := *d
		cp.ID, cp.Project, cp.CreatedAt, cp.UpdatedAt = s.id(), p.ID, now, now
		s.drafts[p.ID] = &cp
	}
	for _, n := range sortedByID(s.notes, func(n *models.Note) bool { return n.Project == id }) {
		n.ID, n.Project, n.CreatedAt, n.UpdatedAt = s.id(), p.ID, now, now
		s.notes[n.ID] = &n
	}
	return *p, true
}

func (s *store) getDraft(user string, project int64) (models.ProjectDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[project]
	if !ok || !s.ownsLocked(user, project) {
		return models.ProjectDocument{}, false
	}
	return *d, true
}

func (s *store) saveDraft(user string, project int64, content string, now time.Time) (models.ProjectDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, project) {
		return models.ProjectDocument{}, false
	}
	d, ok := s.drafts[project]
	if !ok {
		d = &models.ProjectDocument{ID: s.id(), Project: project, CreatedAt: now}
		s.drafts[project] = d
	}
	d.Content = content
	d.UpdatedAt = now
	return *d, true
}

func (s *store) listDocuments(user string, project int64) []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.documents, func(d *models.Document) bool {
		return s.ownsLocked(user, d.Project) && (project == 0 || d.Project == project)
	})
}

func (s *store) createDocument(user string, in models.NewDocument, now time.Time) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, in.Project) {
		return models.Document{}, false
	}
	d := &models.Document{ID: s.id(), Project: in.Project, Title: in.Title, Content: in.Content, CreatedAt: now, UpdatedAt: now}
	s.documents[d.ID] = d
	return *d, true
}

func (s *store) getDocument(user string, id int64) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.documents[id]
	if !ok || !s.ownsLocked(user, d.Project) {
		return models.Document{}, false
	}
	return *d, true
}

func (s *store) updateDocument(user string, id int64, patch models.DocumentPatch, now time.Time) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.documents[id]
	if !ok || !s.ownsLocked(user, d.Project) {
		return models.Document{}, false
	}
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Content != nil {
		d.Content = *patch.Content
	}
	d.UpdatedAt = now
	return *d, true
}

func (s *store) deleteDocument(user string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.documents[id]
	if !ok || !s.ownsLocked(user, d.Project) {
		return false
	}
	delete(s.documents, id)
	return true
}

func (s *store) listNotes(user string, project int64) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.notes, func(n *models.Note) bool {
		return s.ownsLocked(user, n.Project) && (project == 0 || n.Project == project)
	})
}

func (s *store) createNote(user string, in models.NewNote, now time.Time) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, in.Project) {
		return models.Note{}, false
	}
	n := &models.Note{
		ID:             s.id(),
		Project:        in.Project,
		Title:          in.Title,
		NameIdentifier: in.NameIdentifier,
		Content:        in.Content,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.notes[n.ID] = n
	return *n, true
}

func (s *store) updateNote(user string, id int64, patch models.NotePatch, now time.Time) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || !s.ownsLocked(user, n.Project) {
		return models.Note{}, false
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.NameIdentifier != nil {
		n.NameIdentifier = *patch.NameIdentifier
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	n.UpdatedAt = now
	return *n, true
}

func (s *store) deleteNote(user string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || !s.ownsLocked(user, n.Project) {
		return false
	}
	delete(s.notes, id)
	return true
}

func (s *store) listResources(user string, project int64) []models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.resources, func(r *models.Resource) bool {
		return s.ownsLocked(user, r.Project) && (project == 0 || r.Project == project)
	})
}

func (s *store) createResource(user string, r models.Resource, data []byte) (models.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsLocked(user, r.Project) {
		return models.Resource{}, false
	}
	r.ID = s.id()
	r.FileSize = int64(len(data))
	s.resources[r.ID] = &r
	s.files[r.ID] = data
	return r, true
}

// withResource runs fn on the stored resource under the lock.
func (s *store) withResource(user string, id int64, fn func(r *models.Resource, data []byte)) (models.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok || !s.ownsLocked(user, r.Project) {
		return models.Resource{}, false
	}
	if fn != nil {
		fn(r, s.files[id])
	}
	return *r, true
}

func (s *store) deleteResource(user string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok || !s.ownsLocked(user, r.Project) {
		return false
	}
	delete(s.resources, id)
	delete(s.files, id)
	return true
}
