package desk

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/docdesk/classify"
	"github.com/hazyhaar/docdesk/docstore"
	"github.com/hazyhaar/docdesk/extract"
	"github.com/hazyhaar/docdesk/phonekey"
)

// ErrDecode marks document_data that is not valid base64.
var ErrDecode = errors.New("document_data is not valid base64")

// UploadRequest carries the upload_document arguments.
type UploadRequest struct {
	DocumentData string `json:"document_data"`
	Filename     string `json:"filename"`
	PhoneNumber  string `json:"phone_number"`
}

// Upload decodes, extracts, and stores a document under the caller's
// normalized identifier, replacing any previous session for that key.
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "upload_document", req, start, err) }()

	key := phonekey.Normalize(identifierOf(req.PhoneNumber))

	data, err := base64.StdEncoding.DecodeString(req.DocumentData)
	if err != nil {
		return "", fmt.Errorf("%w: %v. Encode the raw file bytes with standard base64 and retry, or pass plain text through process_any_document", ErrDecode, err)
	}

	format, err := extract.Detect(req.Filename)
	if err != nil {
		return "", err
	}

	text, err := s.extractor.Text(data, format)
	if err != nil {
		return "", fmt.Errorf("extraction failed for %q: %w. If the file is a legacy binary format, convert it (e.g. DOC to DOCX) and upload again", req.Filename, err)
	}

	sess := &docstore.Session{
		Identifier: key,
		DocID:      s.newDocID(),
		Filename:   req.Filename,
		Extension:  string(format),
		Text:       text,
		Raw:        data,
		UploadedAt: time.Now(),
	}
	s.store.Put(key, sess)

	cat := classify.Classify(text)
	s.log.Info("document uploaded",
		"identifier", key,
		"doc_id", sess.DocID,
		"filename", req.Filename,
		"format", format,
		"chars", len(text),
		"type", cat)

	var b strings.Builder
	b.WriteString("**Document Uploaded**\n\n")
	fmt.Fprintf(&b, "- Identifier: %s\n", key)
	fmt.Fprintf(&b, "- Filename: %s\n", req.Filename)
	fmt.Fprintf(&b, "- Document ID: %s\n", sess.DocID)
	fmt.Fprintf(&b, "- Detected type: %s\n", cat.Label())
	fmt.Fprintf(&b, "- Extracted characters: %d\n\n", len([]rune(text)))
	b.WriteString("**Preview:**\n---\n")
	b.WriteString(preview(text, 500))
	b.WriteString("\n---\n\n")
	b.WriteString("Next: run process_document (summarize, analyze, extract_key_points, word_count, format_clean) or search_document against this identifier.")
	return s.sign(b.String()), nil
}
