// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"groundwork/internal/models"
	"groundwork/internal/ordering"
	"groundwork/internal/render"
	"groundwork/internal/slug"
	"groundwork/internal/storage"
	"groundwork/internal/store"
)

// thumbWidth is the pixel width of generated gallery thumbnails.
const thumbWidth = 480

// AlbumsList shows all gallery albums.
func (h *Admin) AlbumsList(w http.ResponseWriter, r *http.Request) {
	h.albumsList(w, r, nil)
}

func (h *Admin) albumsList(w http.ResponseWriter, r *http.Request, flashes []render.Flash) {
	albums, err := h.albums.List()
	if err != nil {
		h.serverError(w, "list albums", err)
		return
	}

	// Resolve linked project titles for the table.
	titles := make(map[uuid.UUID]string)
	for _, a := range albums {
		if a.ProjectID == nil {
			continue
		}
		p, err := h.projects.FindByID(*a.ProjectID)
		if err != nil {
			h.serverError(w, "resolve linked project", err)
			return
		}
		if p != nil {
			titles[a.ID] = p.Title
		}
	}

	h.render.Page(w, r, "albums_list", &render.PageData{
		Title:   "Gallery",
		Section: "gallery",
		Flashes: flashes,
		Data: map[string]any{
			"Albums":        albums,
			"ProjectTitles": titles,
		},
	})
}

// AlbumNew renders an empty album form.
func (h *Admin) AlbumNew(w http.ResponseWriter, r *http.Request) {
	h.albumForm(w, r, nil, nil)
}

// AlbumEdit renders the form pre-filled with an existing album.
func (h *Admin) AlbumEdit(w http.ResponseWriter, r *http.Request) {
	album, ok := h.loadAlbum(w, r)
	if !ok {
		return
	}
	h.albumForm(w, r, album, nil)
}

func (h *Admin) albumForm(w http.ResponseWriter, r *http.Request, a *models.Album, flashes []render.Flash) {
	categories, err := h.categories.ListActiveByType(models.CategoryTypeGallery)
	if err != nil {
		h.serverError(w, "list gallery categories", err)
		return
	}
	projects, err := h.projects.List()
	if err != nil {
		h.serverError(w, "list projects", err)
		return
	}

	action := "/admin/albums"
	title := "New album"
	if a != nil {
		action = "/admin/albums/" + a.ID.String()
		title = "Edit album"
	}

	h.render.Page(w, r, "album_form", &render.PageData{
		Title:   title,
		Section: "gallery",
		Flashes: flashes,
		Data: map[string]any{
			"Album":      a,
			"Categories": categories,
			"Projects":   projects,
			"Action":     action,
		},
	})
}

// AlbumCreate inserts a new album. The store forces project-linked albums
// into the Project Sites category.
func (h *Admin) AlbumCreate(w http.ResponseWriter, r *http.Request) {
	album, categoryIDs, ok := h.albumFromForm(w, r, nil)
	if !ok {
		return
	}
	created, err := h.albums.Create(album, categoryIDs)
	if err != nil {
		h.serverError(w, "create album", err)
		return
	}
	slog.Info("album created", "slug", created.Slug, "linked", created.IsLinked())
	h.invalidateGallery(r)
	http.Redirect(w, r, "/admin/albums/"+created.ID.String()+"/images", http.StatusSeeOther)
}

// AlbumUpdate saves edits. Dropping a linked album out of Project Sites is
// rejected with an inline error.
func (h *Admin) AlbumUpdate(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadAlbum(w, r)
	if !ok {
		return
	}
	album, categoryIDs, ok := h.albumFromForm(w, r, existing)
	if !ok {
		return
	}

	if err := h.albums.Update(album, categoryIDs); err != nil {
		if errors.Is(err, store.ErrProjectSitesLocked) {
			h.albumForm(w, r, existing, []render.Flash{{
				Type:    "error",
				Message: "Albums linked to a project always stay in the Project Sites category.",
			}})
			return
		}
		h.serverError(w, "update album", err)
		return
	}

	h.invalidateGallery(r)
	http.Redirect(w, r, "/admin/albums", http.StatusSeeOther)
}

func (h *Admin) albumFromForm(w http.ResponseWriter, r *http.Request, existing *models.Album) (*models.Album, []uuid.UUID, bool) {
	projectID, err := formUUIDPtr(r, "project_id")
	if err != nil {
		http.Error(w, "invalid project", http.StatusBadRequest)
		return nil, nil, false
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if projectID != nil {
		// Linked albums take their name from the project title; whatever
		// the form submitted is ignored. The store enforces the same rule.
		p, err := h.projects.FindByID(*projectID)
		if err != nil {
			h.serverError(w, "resolve linked project", err)
			return nil, nil, false
		}
		if p == nil {
			http.Error(w, "invalid project", http.StatusBadRequest)
			return nil, nil, false
		}
		name = p.Title
	}
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return nil, nil, false
	}

	var categoryIDs []uuid.UUID
	for _, raw := range r.Form["category_ids"] {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid category", http.StatusBadRequest)
			return nil, nil, false
		}
		categoryIDs = append(categoryIDs, id)
	}

	a := &models.Album{
		Name:          name,
		Slug:          slug.Generate(name),
		Description:   r.FormValue("description"),
		ProjectID:     projectID,
		ShowOnWebsite: formChecked(r, "show_on_website"),
		IsFeatured:    formChecked(r, "is_featured"),
	}
	if existing != nil {
		a.ID = existing.ID
		a.Slug = existing.Slug
	}
	return a, categoryIDs, true
}

// AlbumDelete removes an album, its images, and their S3 objects.
func (h *Admin) AlbumDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	keys, err := h.albums.Delete(id)
	if err != nil {
		h.serverError(w, "delete album", err)
		return
	}
	h.deletePublicObjects(r, keys)
	h.invalidateGallery(r)
	h.albumsList(w, r, nil)
}

// AlbumImages shows the image grid and upload form for one album.
func (h *Admin) AlbumImages(w http.ResponseWriter, r *http.Request) {
	album, ok := h.loadAlbum(w, r)
	if !ok {
		return
	}
	h.albumImages(w, r, album)
}

func (h *Admin) albumImages(w http.ResponseWriter, r *http.Request, album *models.Album) {
	images, err := h.images.ListByAlbum(album.ID)
	if err != nil {
		h.serverError(w, "list images", err)
		return
	}

	urls := make(map[uuid.UUID]string, len(images))
	for _, img := range images {
		// Thumbnails keep the admin grid light; fall back to the original.
		if img.ThumbS3Key != nil && *img.ThumbS3Key != "" {
			urls[img.ID] = h.publicURL(img.ThumbS3Key)
		} else {
			urls[img.ID] = h.publicURL(&img.S3Key)
		}
	}

	h.render.Page(w, r, "album_images", &render.PageData{
		Title:   album.Name,
		Section: "gallery",
		Data: map[string]any{
			"Album":     album,
			"Images":    images,
			"ImageURLs": urls,
		},
	})
}

// ImageUpload stores an uploaded photo in the public bucket, generates a
// thumbnail, and appends the image to the album.
func (h *Admin) ImageUpload(w http.ResponseWriter, r *http.Request) {
	album, ok := h.loadAlbum(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := fileExt(header)
	if !isImageUpload(ext) {
		http.Error(w, "unsupported image type", http.StatusBadRequest)
		return
	}
	if h.storage == nil {
		http.Error(w, "object storage is not configured", http.StatusServiceUnavailable)
		return
	}

	original, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		h.serverError(w, "read upload", err)
		return
	}

	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		http.Error(w, "file is not a decodable image", http.StatusBadRequest)
		return
	}

	objID := uuid.NewString()
	fullKey := storage.GalleryKey(album.ID.String(), objID, ext)
	if err := h.storage.Upload(r.Context(), h.storage.PublicBucket(), fullKey,
		contentTypeForExt(ext), bytes.NewReader(original), int64(len(original))); err != nil {
		h.serverError(w, "upload image", err)
		return
	}

	thumbKey := storage.ThumbKey(album.ID.String(), objID)
	thumb, err := encodeThumbnail(src)
	if err != nil {
		h.serverError(w, "encode thumbnail", err)
		return
	}
	if err := h.storage.Upload(r.Context(), h.storage.PublicBucket(), thumbKey,
		"image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
		h.serverError(w, "upload thumbnail", err)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = header.Filename
	}
	if _, err := h.images.Create(&models.GalleryImage{
		AlbumID:    album.ID,
		Title:      title,
		S3Key:      fullKey,
		ThumbS3Key: &thumbKey,
	}); err != nil {
		h.serverError(w, "create image", err)
		return
	}

	h.invalidateGallery(r)
	http.Redirect(w, r, "/admin/albums/"+album.ID.String()+"/images", http.StatusSeeOther)
}

// encodeThumbnail scales the image down to thumbWidth and encodes JPEG.
func encodeThumbnail(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	w := bounds.Dx()
	hgt := bounds.Dy()
	if w > thumbWidth {
		hgt = hgt * thumbWidth / w
		w = thumbWidth
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, hgt))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImageMove shifts an image within its album ordering.
func (h *Admin) ImageMove(w http.ResponseWriter, r *http.Request) {
	img, ok := h.loadImage(w, r)
	if !ok {
		return
	}
	dir := ordering.Direction(r.URL.Query().Get("dir"))
	if !ordering.ValidDirection(dir) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, err := h.images.Move(img.ID, dir); err != nil {
		h.serverError(w, "move image", err)
		return
	}
	h.invalidateGallery(r)
	h.renderImageAlbum(w, r, img.AlbumID)
}

// ImageFeature marks the image as the album cover.
func (h *Admin) ImageFeature(w http.ResponseWriter, r *http.Request) {
	img, ok := h.loadImage(w, r)
	if !ok {
		return
	}
	if err := h.images.SetFeatured(img.ID); err != nil {
		h.serverError(w, "feature image", err)
		return
	}
	h.invalidateGallery(r)
	h.renderImageAlbum(w, r, img.AlbumID)
}

// ImageDelete removes an image and its S3 objects.
func (h *Admin) ImageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	img, err := h.images.Delete(id)
	if err != nil {
		h.serverError(w, "delete image", err)
		return
	}
	if img == nil {
		http.NotFound(w, r)
		return
	}

	keys := []string{img.S3Key}
	if img.ThumbS3Key != nil {
		keys = append(keys, *img.ThumbS3Key)
	}
	h.deletePublicObjects(r, keys)
	h.invalidateGallery(r)
	h.renderImageAlbum(w, r, img.AlbumID)
}

func (h *Admin) loadAlbum(w http.ResponseWriter, r *http.Request) (*models.Album, bool) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	album, err := h.albums.FindByID(id)
	if err != nil {
		h.serverError(w, "find album", err)
		return nil, false
	}
	if album == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return album, true
}

func (h *Admin) loadImage(w http.ResponseWriter, r *http.Request) (*models.GalleryImage, bool) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	img, err := h.images.FindByID(id)
	if err != nil {
		h.serverError(w, "find image", err)
		return nil, false
	}
	if img == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return img, true
}

func (h *Admin) renderImageAlbum(w http.ResponseWriter, r *http.Request, albumID uuid.UUID) {
	album, err := h.albums.FindByID(albumID)
	if err != nil {
		h.serverError(w, "find album", err)
		return
	}
	if album == nil {
		http.NotFound(w, r)
		return
	}
	h.albumImages(w, r, album)
}

func (h *Admin) deletePublicObjects(r *http.Request, keys []string) {
	if h.storage == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := h.storage.Delete(r.Context(), h.storage.PublicBucket(), key); err != nil {
			slog.Warn("delete object failed", "key", key, "error", err)
		}
	}
}

func (h *Admin) invalidateGallery(r *http.Request) {
	if h.pages == nil {
		return
	}
	h.pages.InvalidatePrefix(r.Context(), "/gallery")
	h.pages.InvalidateHomepage(r.Context())
}
