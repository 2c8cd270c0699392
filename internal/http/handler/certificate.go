package handler

import (
	"bytes"
	"html/template"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"certshare/internal/http/middleware"
	"certshare/internal/preview"
	"certshare/internal/service"
)

var validate = validator.New()

const issueDateLayout = "2006-01-02"

// uploadForm is the shared metadata form of a multipart upload request.
type uploadForm struct {
	Title       string `form:"title" validate:"required"`
	Issuer      string `form:"issuer" validate:"required"`
	IssueDate   string `form:"issue_date" validate:"required,datetime=2006-01-02"`
	Description string `form:"description"`
}

// UploadCertificates handles a multipart batch upload. All files share the
// metadata form; per-file rejections are reported without failing the batch.
//
// @Summary Upload certificates
// @Tags certificates
// @Accept mpfd
// @Produce json
// @Success 201 {object} service.BatchResult
// @Router /certificates [post]
func UploadCertificates(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.UserIDFromCtx(c)

		var form uploadForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "required fields are missing")
		}
		if err := validate.Struct(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "required fields are missing")
		}
		issueDate, err := time.Parse(issueDateLayout, form.IssueDate)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "issue_date must be YYYY-MM-DD")
		}
		isPublic, err := strconv.ParseBool(c.FormValue("is_public", "true"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_VISIBILITY", "is_public must be a boolean")
		}

		headers, err := fileHeaders(c)
		if err != nil || len(headers) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "at least one file is required")
		}

		files := make([]service.FileUpload, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			files = append(files, service.FileUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Reader:      f,
			})
		}

		meta := service.CertificateMeta{
			Title:       form.Title,
			Issuer:      form.Issuer,
			IssueDate:   issueDate,
			Description: form.Description,
			IsPublic:    isPublic,
		}
		res, err := svc.UploadBatch(c.UserContext(), userID, meta, files)
		if err != nil {
			// Certificates created before the abort are still reported.
			if res != nil && len(res.CreatedIDs) > 0 {
				return writePartialFailure(c, err, res)
			}
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// fileHeaders collects uploaded files from the "files" multipart field, with
// a single-file "file" fallback.
func fileHeaders(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	if headers := form.File["files"]; len(headers) > 0 {
		return headers, nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	return []*multipart.FileHeader{fh}, nil
}

// writePartialFailure reports a batch that created some certificates before a
// pipeline error aborted the remainder.
func writePartialFailure(c *fiber.Ctx, err error, res *service.BatchResult) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"request_id": requestIDFromCtx(c),
		"error": errorEnvelope{
			Code:    "INTERNAL_ERROR",
			Message: "some files could not be uploaded",
		},
		"created_ids": res.CreatedIDs,
		"rejected":    res.Rejected,
	})
}

// ExploreCertificates returns the public discovery feed, newest first,
// optionally narrowed by the q parameter.
//
// @Summary Explore public certificates
// @Tags certificates
// @Produce json
// @Param q query string false "search term"
// @Success 200 {array} model.CertificateWithOwner
// @Router /certificates [get]
func ExploreCertificates(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Explore(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": items, "total": len(items)})
	}
}

// GetCertificate returns one public certificate with its owner. Each
// successful fetch counts as a view.
//
// @Summary Get a public certificate
// @Tags certificates
// @Produce json
// @Param id path string true "certificate id"
// @Success 200 {object} service.CertificateDetail
// @Router /certificates/{id} [get]
func GetCertificate(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		detail, err := svc.GetPublic(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(detail)
	}
}

type updateCertificateRequest struct {
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public" validate:"required"`
}

// UpdateCertificate lets the owner change description and visibility. A
// certificate owned by someone else is indistinguishable from a missing one.
//
// @Summary Update an owned certificate
// @Tags certificates
// @Accept json
// @Produce json
// @Param id path string true "certificate id"
// @Success 200 {object} model.Certificate
// @Router /certificates/{id} [patch]
func UpdateCertificate(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req updateCertificateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "required fields are missing")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "is_public is required")
		}
		cert, err := svc.UpdateOwn(c.UserContext(), middleware.UserIDFromCtx(c), id, req.Description, *req.IsPublic)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cert)
	}
}

// ListMyCertificates returns every certificate of the authenticated user,
// private ones included.
//
// @Summary List own certificates
// @Tags certificates
// @Produce json
// @Success 200 {array} model.Certificate
// @Router /me/certificates [get]
func ListMyCertificates(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListOwn(c.UserContext(), middleware.UserIDFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": items, "total": len(items)})
	}
}

// DownloadCertificate redirects to a fetchable URL for the file: the
// permanent public URL for public certificates, a short-lived presigned URL
// for the owner of a private one.
//
// @Summary Download a certificate file
// @Tags certificates
// @Param id path string true "certificate id"
// @Success 302
// @Router /certificates/{id}/download [get]
func DownloadCertificate(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.DownloadURL(c.UserContext(), middleware.UserIDFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; background: #1e1e1e; color: #eee; font-family: sans-serif; }
    header { padding: 8px 16px; display: flex; justify-content: space-between; align-items: center; }
    main { display: flex; justify-content: center; padding: 16px; }
    img { max-width: 100%; }
  </style>
</head>
<body>
  <header>
    <span>{{.Title}} &middot; {{.Issuer}}</span>
    <a href="{{.FileURL}}" download>Download</a>
  </header>
  <main>
{{if .IsPDF}}    <canvas id="page"></canvas>
    <script src="https://unpkg.com/pdfjs-dist@4/build/pdf.min.mjs" type="module"></script>
    <script type="module">
      import * as pdfjs from 'https://unpkg.com/pdfjs-dist@4/build/pdf.min.mjs';
      pdfjs.GlobalWorkerOptions.workerSrc = 'https://unpkg.com/pdfjs-dist@4/build/pdf.worker.min.mjs';
      const doc = await pdfjs.getDocument('{{.FileURL}}').promise;
      const page = await doc.getPage(1);
      const viewport = page.getViewport({ scale: 1.0 });
      const canvas = document.getElementById('page');
      canvas.width = viewport.width;
      canvas.height = viewport.height;
      page.render({ canvasContext: canvas.getContext('2d'), viewport });
    </script>
{{else if .IsImage}}    <img src="{{.FileURL}}" alt="{{.Title}}" />
{{else}}    <a href="{{.FileURL}}">Open file</a>
{{end}}  </main>
</body>
</html>`))

type viewerData struct {
	Title   string
	Issuer  string
	FileURL string
	IsPDF   bool
	IsImage bool
}

// CertificateViewer serves an inline HTML preview page for a public
// certificate. PDFs render through pdf.js, images as plain img tags.
//
// @Summary Certificate preview page
// @Tags certificates
// @Produce html
// @Param id path string true "certificate id"
// @Success 200 {string} string
// @Router /certificates/{id}/viewer [get]
func CertificateViewer(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		detail, err := svc.GetPublic(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		kind := preview.KindFor(detail.Certificate.FileType)
		data := viewerData{
			Title:   detail.Certificate.Title,
			Issuer:  detail.Certificate.Issuer,
			FileURL: detail.Certificate.FileURL,
			IsPDF:   kind == preview.KindPDF,
			IsImage: kind == preview.KindImage,
		}
		var buf bytes.Buffer
		if err := viewerTemplate.Execute(&buf, data); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Type("html").SendString(buf.String())
	}
}
