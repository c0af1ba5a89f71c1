// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"groundwork/internal/cache"
	"groundwork/internal/middleware"
	"groundwork/internal/models"
	"groundwork/internal/render"
	"groundwork/internal/storage"
	"groundwork/internal/store"
)

// homeAlbumLimit caps the "from the field" album strip on the homepage.
const homeAlbumLimit = 4

// Public serves the marketing site. Pages without forms render through
// the Valkey page cache; form pages render fresh so each visitor gets
// their own CSRF token.
type Public struct {
	categories *store.CategoryStore
	projects   *store.ProjectStore
	clients    *store.ClientStore
	albums     *store.AlbumStore
	images     *store.GalleryImageStore
	jobs       *store.JobStore
	apps       *store.ApplicationStore
	contacts   *store.ContactStore
	equipment  *store.EquipmentStore

	storage *storage.Client
	pages   *cache.PageCache
	render  *render.Renderer
}

// PublicStores groups the store dependencies for NewPublic.
type PublicStores struct {
	Categories *store.CategoryStore
	Projects   *store.ProjectStore
	Clients    *store.ClientStore
	Albums     *store.AlbumStore
	Images     *store.GalleryImageStore
	Jobs       *store.JobStore
	Apps       *store.ApplicationStore
	Contacts   *store.ContactStore
	Equipment  *store.EquipmentStore
}

// NewPublic creates the public handler group.
func NewPublic(s PublicStores, st *storage.Client, pages *cache.PageCache, rn *render.Renderer) *Public {
	return &Public{
		categories: s.Categories,
		projects:   s.Projects,
		clients:    s.Clients,
		albums:     s.Albums,
		images:     s.Images,
		jobs:       s.Jobs,
		apps:       s.Apps,
		contacts:   s.Contacts,
		equipment:  s.Equipment,
		storage:    st,
		pages:      pages,
		render:     rn,
	}
}

// cached renders a public page through the page cache. The build function
// runs only on a miss; a nil PageData from build means 404.
func (h *Public) cached(w http.ResponseWriter, r *http.Request, key, tmpl string, build func() (*render.PageData, error)) {
	ctx := r.Context()
	if h.pages != nil {
		if html, ok := h.pages.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(html)
			return
		}
	}

	data, err := build()
	if err != nil {
		h.serverError(w, key, err)
		return
	}
	if data == nil {
		h.NotFound(w, r)
		return
	}

	html, err := h.render.PublicHTML(tmpl, data)
	if err != nil {
		h.serverError(w, key, err)
		return
	}
	if h.pages != nil {
		h.pages.Set(ctx, key, html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (h *Public) serverError(w http.ResponseWriter, op string, err error) {
	slog.Error("public handler error", "op", op, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// publicURL resolves a public-bucket key, tolerating nil keys and an
// unconfigured storage client.
func (h *Public) publicURL(key *string) string {
	if key == nil || *key == "" || h.storage == nil {
		return ""
	}
	return h.storage.FileURL(*key)
}

// Home renders the homepage: featured projects, featured albums, and the
// client logo strip.
func (h *Public) Home(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.HomepageKey(), "home", func() (*render.PageData, error) {
		featured, err := h.projects.ListFeaturedVisible()
		if err != nil {
			return nil, err
		}
		albums, err := h.albums.ListVisible()
		if err != nil {
			return nil, err
		}
		var fieldAlbums []models.Album
		for _, a := range albums {
			if a.IsFeatured {
				fieldAlbums = append(fieldAlbums, a)
			}
			if len(fieldAlbums) == homeAlbumLimit {
				break
			}
		}
		clients, err := h.clients.ListVisible()
		if err != nil {
			return nil, err
		}
		logoURLs := make(map[uuid.UUID]string, len(clients))
		for _, c := range clients {
			if url := h.publicURL(c.LogoS3Key); url != "" {
				logoURLs[c.ID] = url
			}
		}

		return &render.PageData{
			Title:   "Heavy civil construction",
			Section: "home",
			Data: map[string]any{
				"Featured": featured,
				"Albums":   fieldAlbums,
				"Clients":  clients,
				"LogoURLs": logoURLs,
			},
		}, nil
	})
}

// About renders the company page with live counts.
func (h *Public) About(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.PathKey(r.URL.Path, ""), "about", func() (*render.PageData, error) {
		projectCount, err := h.projects.Count()
		if err != nil {
			return nil, err
		}
		clientCount, err := h.clients.Count()
		if err != nil {
			return nil, err
		}
		equipment, err := h.equipment.ListVisible()
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Title:   "About",
			Section: "about",
			Data: map[string]any{
				"ProjectCount":   projectCount,
				"ClientCount":    clientCount,
				"EquipmentCount": len(equipment),
			},
		}, nil
	})
}

// Projects renders the filterable project list. Each filter combination
// caches under its own key.
func (h *Public) Projects(w http.ResponseWriter, r *http.Request) {
	key := cache.PathKey(r.URL.Path, r.URL.Query().Encode())
	h.cached(w, r, key, "projects", func() (*render.PageData, error) {
		categories, err := h.categories.ListActiveByType(models.CategoryTypeProject)
		if err != nil {
			return nil, err
		}

		q := r.URL.Query()
		filter := store.ProjectFilter{
			Search: strings.TrimSpace(q.Get("q")),
			Sort:   q.Get("sort"),
		}
		if status := models.ProjectStatus(q.Get("status")); models.ValidProjectStatus(status) {
			filter.Status = status
		}
		categorySlug := q.Get("category")
		for i := range categories {
			if categories[i].Slug == categorySlug {
				filter.CategoryID = &categories[i].ID
				break
			}
		}

		projects, err := h.projects.ListVisible(filter)
		if err != nil {
			return nil, err
		}

		sort := filter.Sort
		if sort == "" {
			sort = "newest"
		}
		return &render.PageData{
			Title:   "Projects",
			Section: "projects",
			Data: map[string]any{
				"Projects":     projects,
				"Categories":   categories,
				"CategorySlug": categorySlug,
				"Status":       string(filter.Status),
				"Search":       filter.Search,
				"Sort":         sort,
			},
		}, nil
	})
}

// ProjectDetail renders one visible project with its linked albums.
func (h *Public) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	h.cached(w, r, cache.PathKey(r.URL.Path, ""), "project_detail", func() (*render.PageData, error) {
		project, err := h.projects.FindVisibleBySlug(slug)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, nil
		}
		albums, err := h.albums.ListByProject(project.ID)
		if err != nil {
			return nil, err
		}
		var visible []models.Album
		for _, a := range albums {
			if a.ShowOnWebsite {
				visible = append(visible, a)
			}
		}
		return &render.PageData{
			Title:   project.Title,
			Section: "projects",
			Data: map[string]any{
				"Project": project,
				"Albums":  visible,
			},
		}, nil
	})
}

// Gallery renders the album grid, optionally filtered by category.
func (h *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	key := cache.PathKey(r.URL.Path, r.URL.Query().Encode())
	h.cached(w, r, key, "gallery", func() (*render.PageData, error) {
		categories, err := h.categories.ListActiveByType(models.CategoryTypeGallery)
		if err != nil {
			return nil, err
		}

		categorySlug := r.URL.Query().Get("category")
		var albums []models.Album
		if categorySlug != "" {
			for i := range categories {
				if categories[i].Slug == categorySlug {
					albums, err = h.albums.ListVisibleByCategory(categories[i].ID)
					break
				}
			}
		} else {
			albums, err = h.albums.ListVisible()
		}
		if err != nil {
			return nil, err
		}

		coverURLs := make(map[uuid.UUID]string, len(albums))
		for _, a := range albums {
			if url := h.publicURL(a.CoverS3Key); url != "" {
				coverURLs[a.ID] = url
			}
		}

		return &render.PageData{
			Title:   "Gallery",
			Section: "gallery",
			Data: map[string]any{
				"Albums":       albums,
				"Categories":   categories,
				"CategorySlug": categorySlug,
				"CoverURLs":    coverURLs,
			},
		}, nil
	})
}

// Album renders a visible album's image grid.
func (h *Public) Album(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	h.cached(w, r, cache.PathKey(r.URL.Path, ""), "album", func() (*render.PageData, error) {
		album, err := h.albums.FindVisibleBySlug(slug)
		if err != nil {
			return nil, err
		}
		if album == nil {
			return nil, nil
		}
		images, err := h.images.ListByAlbum(album.ID)
		if err != nil {
			return nil, err
		}

		imageURLs := make(map[uuid.UUID]string, len(images))
		thumbURLs := make(map[uuid.UUID]string, len(images))
		for _, img := range images {
			imageURLs[img.ID] = h.publicURL(&img.S3Key)
			if url := h.publicURL(img.ThumbS3Key); url != "" {
				thumbURLs[img.ID] = url
			}
		}

		var project *models.Project
		if album.ProjectID != nil {
			p, err := h.projects.FindByID(*album.ProjectID)
			if err != nil {
				return nil, err
			}
			if p != nil && p.ShowOnWebsite {
				project = p
			}
		}

		return &render.PageData{
			Title:   album.Name,
			Section: "gallery",
			Data: map[string]any{
				"Album":     album,
				"Images":    images,
				"ImageURLs": imageURLs,
				"ThumbURLs": thumbURLs,
				"Project":   project,
			},
		}, nil
	})
}

// Fleet renders the visible equipment list.
func (h *Public) Fleet(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.PathKey(r.URL.Path, ""), "fleet", func() (*render.PageData, error) {
		items, err := h.equipment.ListVisible()
		if err != nil {
			return nil, err
		}
		imageURLs := make(map[uuid.UUID]string, len(items))
		for _, e := range items {
			if url := h.publicURL(e.ImageS3Key); url != "" {
				imageURLs[e.ID] = url
			}
		}
		return &render.PageData{
			Title:   "Fleet",
			Section: "fleet",
			Data: map[string]any{
				"Equipment": items,
				"ImageURLs": imageURLs,
			},
		}, nil
	})
}

// Clients renders the client roster with logos and website links.
func (h *Public) Clients(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.PathKey(r.URL.Path, ""), "clients", func() (*render.PageData, error) {
		clients, err := h.clients.ListVisible()
		if err != nil {
			return nil, err
		}
		logoURLs := make(map[uuid.UUID]string, len(clients))
		for _, c := range clients {
			if url := h.publicURL(c.LogoS3Key); url != "" {
				logoURLs[c.ID] = url
			}
		}
		return &render.PageData{
			Title:   "Clients",
			Section: "clients",
			Data: map[string]any{
				"Clients":  clients,
				"LogoURLs": logoURLs,
			},
		}, nil
	})
}

// Careers renders open job postings.
func (h *Public) Careers(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, cache.PathKey(r.URL.Path, ""), "careers", func() (*render.PageData, error) {
		jobs, err := h.jobs.ListOpen()
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Title:   "Careers",
			Section: "careers",
			Data:    map[string]any{"Jobs": jobs},
		}, nil
	})
}

// JobDetail renders an open posting with the application form. Not cached:
// the form embeds a per-visitor CSRF token.
func (h *Public) JobDetail(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.FindOpenBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		h.serverError(w, "find job", err)
		return
	}
	if job == nil {
		h.NotFound(w, r)
		return
	}
	h.jobDetail(w, r, job, map[string]any{})
}

func (h *Public) jobDetail(w http.ResponseWriter, r *http.Request, job *models.JobPosting, extra map[string]any) {
	data := map[string]any{"Job": job}
	for k, v := range extra {
		data[k] = v
	}
	h.render.Public(w, "job_detail", &render.PageData{
		Title:     job.Title,
		Section:   "careers",
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
		Data:      data,
	})
}

// JobApply accepts an application with an optional PDF resume. The resume
// goes to the private bucket; admins reach it via presigned URLs only.
func (h *Public) JobApply(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.FindOpenBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		h.serverError(w, "find job", err)
		return
	}
	if job == nil {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if !fieldOK(name, maxFieldLen) || !validEmail(email) {
		h.jobDetail(w, r, job, map[string]any{"Error": "Name and a valid email are required."})
		return
	}

	var resumeKey *string
	file, header, err := r.FormFile("resume")
	switch err {
	case nil:
		defer file.Close()
		ext := fileExt(header)
		if ext != "pdf" {
			h.jobDetail(w, r, job, map[string]any{"Error": "Resumes must be PDF files."})
			return
		}
		if h.storage == nil {
			h.jobDetail(w, r, job, map[string]any{"Error": "Resume uploads are temporarily unavailable. Please try again later."})
			return
		}
		key := storage.ResumeKey(uuid.NewString(), ext)
		if upErr := h.storage.Upload(r.Context(), h.storage.PrivateBucket(), key,
			contentTypeForExt(ext), file, header.Size); upErr != nil {
			h.serverError(w, "upload resume", upErr)
			return
		}
		resumeKey = &key
	case http.ErrMissingFile:
		// Resume is optional.
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.apps.Create(&models.JobApplication{
		JobID:       job.ID,
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		CoverLetter: r.FormValue("cover_letter"),
		ResumeS3Key: resumeKey,
	}); err != nil {
		h.serverError(w, "create application", err)
		return
	}

	slog.Info("application received", "job", job.Slug)
	h.jobDetail(w, r, job, map[string]any{"Submitted": true})
}

// ContactPage renders the contact form. Not cached: it embeds a CSRF token.
func (h *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.contactPage(w, r, map[string]any{})
}

func (h *Public) contactPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.render.Public(w, "contact", &render.PageData{
		Title:     "Contact",
		Section:   "contact",
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
		Data:      data,
	})
}

// ContactSubmit stores a contact-form submission for triage.
func (h *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	message := strings.TrimSpace(r.FormValue("message"))

	if !fieldOK(name, maxFieldLen) || !validEmail(email) || !fieldOK(subject, maxFieldLen) || !fieldOK(message, maxMessageLen) {
		h.contactPage(w, r, map[string]any{
			"Error":   "Please fill in your name, a valid email, a subject, and a message.",
			"Name":    name,
			"Email":   email,
			"Phone":   r.FormValue("phone"),
			"Subject": subject,
			"Message": message,
		})
		return
	}

	if _, err := h.contacts.Create(&models.ContactSubmission{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Subject: subject,
		Message: message,
	}); err != nil {
		h.serverError(w, "create contact", err)
		return
	}

	slog.Info("contact message received", "subject", subject)
	h.contactPage(w, r, map[string]any{"Submitted": true})
}

// NotFound renders the public 404 page.
func (h *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	html, err := h.render.PublicHTML("notfound", &render.PageData{
		Title:   "Not found",
		Section: "",
		Data:    map[string]any{},
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(html)
}
