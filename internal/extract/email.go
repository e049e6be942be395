package extract

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"strings"

	"docanalyzer/internal/filestore"
)

// EmailExtractor parses RFC 822 messages: the four standard headers, the
// concatenated text/plain body, and attachments saved into the file store.
// Outlook .msg files are routed here too; they are not RFC 822, so parsing
// fails and the result degrades to base metadata with a labeled error.
type EmailExtractor struct {
	store  *filestore.Store
	logger *slog.Logger
}

func (e *EmailExtractor) Extract(path string, info FileInfo) *Result {
	result := newResult(info)
	capture(result, "email_extraction", func() error {
		return e.extractMessage(path, result)
	})
	return result
}

func (e *EmailExtractor) extractMessage(path string, result *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open message failed: %w", err)
	}
	defer f.Close()

	msg, err := mail.ReadMessage(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("parse message failed: %w", err)
	}

	decoder := new(mime.WordDecoder)
	decodeHeader := func(key string) string {
		raw := msg.Header.Get(key)
		if decoded, err := decoder.DecodeHeader(raw); err == nil {
			return decoded
		}
		return raw
	}
	result.Headers = map[string]string{
		"From":    decodeHeader("From"),
		"To":      decodeHeader("To"),
		"Subject": decodeHeader("Subject"),
		"Date":    msg.Header.Get("Date"),
	}

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		if err := e.readMultipart(msg.Body, params["boundary"], result); err != nil {
			return err
		}
	} else {
		data, err := decodeTransfer(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return fmt.Errorf("decode body failed: %w", err)
		}
		result.Body = string(data)
	}

	result.AttachmentCount = len(result.Attachments)
	return nil
}

func (e *EmailExtractor) readMultipart(body io.Reader, boundary string, result *Result) error {
	reader := multipart.NewReader(body, boundary)
	var text strings.Builder

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read message part failed: %w", err)
		}

		partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
		disposition, _, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition"))

		data, err := decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			e.logger.Warn("skipping undecodable message part", "error", err)
			continue
		}

		if disposition == "attachment" {
			filename := part.FileName()
			if filename == "" {
				continue
			}
			saved, err := e.store.Save(data, "attachment_"+filename)
			if err != nil {
				return fmt.Errorf("save attachment %q failed: %w", filename, err)
			}
			result.Attachments = append(result.Attachments, Attachment{
				Filename: filename,
				Path:     saved,
				MimeType: partType,
			})
			continue
		}

		if partType == "text/plain" {
			text.Write(data)
		}
	}

	result.Body = text.String()
	return nil
}

// decodeTransfer undoes the Content-Transfer-Encoding of a body or part.
// multipart.Part already decodes quoted-printable transparently, so only
// base64 needs explicit handling there.
func decodeTransfer(r io.Reader, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return io.ReadAll(base64.NewDecoder(base64.StdEncoding, r))
	case "quoted-printable":
		return io.ReadAll(quotedprintable.NewReader(r))
	default:
		return io.ReadAll(r)
	}
}
