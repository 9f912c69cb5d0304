package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
)

// File types are classified by extension against this fixed table; anything
// not listed is "unknown".
var fileTypeByExt = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".gif":  "image",
	".webp": "image",
	".mp4":  "video",
	".webm": "video",
	".mov":  "video",
	".avi":  "video",
	".pdf":  "document",
	".doc":  "document",
	".docx": "document",
	".txt":  "document",
}

func classifyFileType(name string) string {
	lower := strings.ToLower(name)
	for ext, fileType := range fileTypeByExt {
		if strings.HasSuffix(lower, ext) {
			return fileType
		}
	}
	return "unknown"
}

func isImageURL(rawURL string) bool {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return classifyFileType(path) == "image"
}

var attachmentIDRe = regexp.MustCompile(`/attachments/[^/]+\.(\d+)/?`)
var attachmentNameRe = regexp.MustCompile(`/attachments/([^/]+)/?`)
var imageNameRe = regexp.MustCompile(`(?i)/([^/]+\.(?:jpg|jpeg|png|gif|webp))`)
var imageBaseRe = regexp.MustCompile(`(?i)/([^/]+)\.(?:jpg|jpeg|png|gif|webp)`)

// extractAttachments scans the post for attached files: the pattern's
// attachment region first, then file-preview anchors and /attachments/ hrefs
// in the body, then embedded bbImage images. Duplicate URLs are dropped.
func (e *Extractor) extractAttachments(container, content *goquery.Selection) []models.Attachment {
	var anchors *goquery.Selection
	if region := firstMatch(container, e.selectorsFor(pattern.RoleAttachments)); region != nil {
		anchors = region.Find("a[href]")
	}
	if anchors == nil || anchors.Length() == 0 {
		scope := content
		if scope == nil {
			scope = container
		}
		anchors = scope.Find("a.file-preview")
		if anchors.Length() == 0 {
			anchors = scope.Find("a[href*='/attachments/']")
		}
	}

	var attachments []models.Attachment
	seen := map[string]bool{}

	anchors.Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" {
			return
		}
		full := e.resolveURL(href)
		if seen[full] {
			return
		}

		id := ""
		if m := attachmentIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}
		filename := strings.TrimSpace(a.Text())
		if filename == "" {
			if m := attachmentNameRe.FindStringSubmatch(href); m != nil {
				filename = m[1]
			} else {
				filename = "attachment_" + id
			}
		}

		seen[full] = true
		attachments = append(attachments, models.Attachment{
			AttachmentID: id,
			Filename:     filename,
			URL:          full,
			FileType:     classifyFileType(filename),
		})
	})

	if content != nil {
		attachments = e.appendEmbeddedImages(content, attachments, seen)
	}
	return attachments
}

// appendEmbeddedImages picks up bbImage images inlined in the body that were
// not already collected as attachment links.
func (e *Extractor) appendEmbeddedImages(content *goquery.Selection, attachments []models.Attachment, seen map[string]bool) []models.Attachment {
	content.Find("img.bbImage").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" {
			src = img.AttrOr("data-url", "")
		}
		// lazy-load placeholders are inline data URIs, not real images
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		full := e.resolveURL(src)
		if seen[full] {
			return
		}

		id := ""
		if m := attachmentIDRe.FindStringSubmatch(src); m != nil {
			id = m[1]
		} else if m := imageBaseRe.FindStringSubmatch(src); m != nil {
			id = m[1]
		}

		filename := img.AttrOr("alt", "")
		if filename == "" {
			filename = img.AttrOr("title", "")
		}
		if filename == "" {
			if m := imageNameRe.FindStringSubmatch(src); m != nil {
				filename = m[1]
			} else {
				filename = "image_" + id + ".jpg"
			}
		}

		seen[full] = true
		attachments = append(attachments, models.Attachment{
			AttachmentID: id,
			Filename:     filename,
			URL:          full,
			FileType:     "image",
		})
	})
	return attachments
}
