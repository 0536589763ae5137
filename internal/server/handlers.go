package server

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"webstore/internal/storage"
)

// lastModifiedLayout is an RFC 1123 date without the zone abbreviation.
const lastModifiedLayout = "Mon, 02 Jan 2006 15:04:05"

type method int

const (
	methodUnsupported method = iota
	methodWrite
	methodRead
	methodDescribe
	methodDelete
)

func parseMethod(m string) method {
	switch m {
	case http.MethodPut:
		return methodWrite
	case http.MethodGet:
		return methodRead
	case http.MethodHead:
		return methodDescribe
	case http.MethodDelete:
		return methodDelete
	default:
		return methodUnsupported
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", nil)
}

// handleResource serves every path that is not an explicit route.
func (s *Server) handleResource(c *gin.Context) {
	m := parseMethod(c.Request.Method)
	if m == methodUnsupported {
		s.respondError(c, errMethodNotAllowed)
		return
	}

	absolutePath, err := s.store.Resolve(strings.TrimPrefix(c.Request.URL.Path, "/"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	// the root only supports listing
	if absolutePath == s.store.Root() && m != methodRead {
		s.respondError(c, errMethodNotAllowed)
		return
	}

	kind, info, err := s.store.Stat(absolutePath)
	if err != nil {
		s.respondError(c, err)
		return
	}

	switch m {
	case methodWrite:
		s.writeResource(c, absolutePath, kind)
	case methodRead:
		s.readResource(c, absolutePath, kind)
	case methodDescribe:
		s.describeResource(c, kind, info)
	case methodDelete:
		s.deleteResource(c, absolutePath, kind)
	case methodUnsupported:
		s.respondError(c, errMethodNotAllowed)
	}
}

func (s *Server) writeResource(c *gin.Context, absolutePath string, kind storage.Kind) {
	if kind == storage.KindDirectory {
		s.respondError(c, storage.ErrIsDirectory)
		return
	}

	created, written, err := s.store.Write(absolutePath, c.Request.Body)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Debug().
		Str("path", s.store.Relative(absolutePath)).
		Bool("created", created).
		Str("size", humanize.Bytes(uint64(written))).
		Msg("file written")

	if created {
		respondEmpty(c, http.StatusCreated)
		return
	}

	respondEmpty(c, http.StatusOK)
}

func (s *Server) readResource(c *gin.Context, absolutePath string, kind storage.Kind) {
	switch kind {
	case storage.KindAbsent:
		s.respondError(c, storage.ErrNotFound)
	case storage.KindFile:
		s.serveFile(c, absolutePath, false)
	case storage.KindDirectory:
		s.listDirectory(c, absolutePath)
	}
}

func (s *Server) listDirectory(c *gin.Context, absolutePath string) {
	entries, err := s.store.List(absolutePath)
	if err != nil {
		s.respondError(c, err)
		return
	}

	relative := s.store.Relative(absolutePath)
	if acceptsHTML(c) {
		c.HTML(http.StatusOK, "listing", listingPageData{
			Path:    "/" + relative,
			Entries: buildEntryViews(relative, entries),
		})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// acceptsHTML reports whether any Accept entry names text/html, wherever it
// appears in the header.
func acceptsHTML(c *gin.Context) bool {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		return true
	}

	// NegotiateFormat has parsed the header into c.Accepted
	for _, accepted := range c.Accepted {
		if accepted == gin.MIMEHTML {
			return true
		}
	}

	return false
}

// describeResource answers HEAD with size and modification time taken from
// a stat alone, suppressing the headers the HTTP layer would add.
func (s *Server) describeResource(c *gin.Context, kind storage.Kind, info os.FileInfo) {
	if kind != storage.KindFile {
		s.respondError(c, storage.ErrNotFound)
		return
	}

	header := c.Writer.Header()
	header.Del("Server")
	header.Del("Connection")
	header["Date"] = nil
	header["Content-Type"] = nil
	header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	header.Set("Last-Modified", info.ModTime().Local().Format(lastModifiedLayout))

	respondEmpty(c, http.StatusOK)
}

func (s *Server) deleteResource(c *gin.Context, absolutePath string, kind storage.Kind) {
	if kind == storage.KindAbsent {
		s.respondError(c, storage.ErrNotFound)
		return
	}

	if err := s.store.Remove(absolutePath); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Debug().
		Str("path", s.store.Relative(absolutePath)).
		Stringer("kind", kind).
		Msg("resource removed")

	respondEmpty(c, http.StatusNoContent)
}

// handleDownload serves a file as an attachment. Directories are not found.
func (s *Server) handleDownload(c *gin.Context) {
	absolutePath, err := s.store.Resolve(strings.TrimPrefix(c.Param("path"), "/"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	kind, _, err := s.store.Stat(absolutePath)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if kind != storage.KindFile {
		s.respondError(c, storage.ErrNotFound)
		return
	}

	s.serveFile(c, absolutePath, true)
}

func (s *Server) serveFile(c *gin.Context, absolutePath string, attachment bool) {
	file, info, err := s.store.Open(absolutePath)
	if err != nil {
		if errors.Is(err, storage.ErrIsDirectory) {
			err = storage.ErrNotFound
		}

		s.respondError(c, err)
		return
	}
	defer file.Close()

	name := filepath.Base(absolutePath)
	contentType, err := storage.ContentType(name, file)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var extraHeaders map[string]string
	if attachment {
		extraHeaders = map[string]string{
			"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": name}),
		}
	}

	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, extraHeaders)
}

func respondEmpty(c *gin.Context, status int) {
	c.Status(status)
	c.Writer.WriteHeaderNow()
}

func (s *Server) respondError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	httpErr := classify(err)
	if httpErr.Status >= http.StatusInternalServerError {
		s.logger.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("filesystem failure")
	}

	c.String(httpErr.Status, httpErr.Message)
}
