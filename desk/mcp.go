package desk

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/docdesk/kit"
)

// RegisterMCP registers every document tool on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerUploadTool(srv)
	s.registerProcessTool(srv)
	s.registerSearchTool(srv)
	s.registerConvertTool(srv)
	s.registerDirectTool(srv)
	s.registerProcessAnyTool(srv)
	s.registerFailureTool(srv)
	s.registerValidateTool(srv)
	s.registerListToolsTool(srv)
	s.registerListFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

// decodeInto builds the standard decode func for a JSON-argument tool.
func decodeInto[T any]() func(*mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r T
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}
}

func decodeNone(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return &kit.MCPDecodeResult{Request: nil}, nil
}

func (s *Service) registerUploadTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a base64-encoded document (docx, doc, pdf, txt, odt, rtf, html), extract its text, and store it under the caller's phone number for later processing.",
		InputSchema: inputSchema(map[string]any{
			"document_data": map[string]any{"type": "string", "description": "Base64-encoded file content"},
			"filename":      map[string]any{"type": "string", "description": "Original filename with extension"},
			"phone_number":  map[string]any{"type": "string", "description": "Owner phone number (default: default_user)"},
		}, []string{"document_data", "filename"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.Upload(ctx, req.(*UploadRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[UploadRequest]())
}

func (s *Service) registerProcessTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "process_document",
		Description: "Run an analysis operation (summarize, analyze, extract_key_points, word_count, format_clean) on the caller's uploaded document.",
		InputSchema: inputSchema(map[string]any{
			"phone_number": map[string]any{"type": "string", "description": "Owner phone number (default: default_user)"},
			"operation":    map[string]any{"type": "string", "description": "Operation name (default: summarize)"},
			"instructions": map[string]any{"type": "string", "description": "Free-form notes, recorded but not interpreted"},
		}, nil),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.Process(ctx, req.(*ProcessRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[ProcessRequest]())
}

func (s *Service) registerSearchTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "search_document",
		Description: "Search the caller's uploaded document for a query string; reports up to 10 matches with surrounding context.",
		InputSchema: inputSchema(map[string]any{
			"search_query":   map[string]any{"type": "string", "description": "Text to find"},
			"phone_number":   map[string]any{"type": "string", "description": "Owner phone number (default: default_user)"},
			"case_sensitive": map[string]any{"type": "boolean", "description": "Match case exactly (default: false)"},
		}, []string{"search_query"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.Search(ctx, req.(*SearchRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[SearchRequest]())
}

func (s *Service) registerConvertTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "convert_word_to_pdf",
		Description: "Convert a base64-encoded Word document (docx, doc) to PDF; returns the PDF base64-encoded. Text only: formatting is not preserved.",
		InputSchema: inputSchema(map[string]any{
			"document_data": map[string]any{"type": "string", "description": "Base64-encoded Word file content"},
			"filename":      map[string]any{"type": "string", "description": "Original filename with extension"},
		}, []string{"document_data", "filename"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.Convert(ctx, req.(*ConvertRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[ConvertRequest]())
}

func (s *Service) registerDirectTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "handle_document_direct",
		Description: "Analyze inline document content without storing a session: base64 file bytes or literal text.",
		InputSchema: inputSchema(map[string]any{
			"document_id": map[string]any{"type": "string", "description": "Caller-side document reference"},
			"content":     map[string]any{"type": "string", "description": "Base64 file bytes or literal text"},
			"file_type":   map[string]any{"type": "string", "description": "File extension, or auto to sniff (default: auto)"},
		}, []string{"document_id"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.Direct(ctx, req.(*DirectRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[DirectRequest]())
}

func (s *Service) registerProcessAnyTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "process_any_document",
		Description: "Analyze document text passed directly. analysis_type: comprehensive, summary, extract, or anything else for quick counts.",
		InputSchema: inputSchema(map[string]any{
			"text_content":  map[string]any{"type": "string", "description": "The document's text"},
			"document_type": map[string]any{"type": "string", "description": "Asserted type, or auto to classify (default: auto)"},
			"analysis_type": map[string]any{"type": "string", "description": "Analysis depth (default: comprehensive)"},
		}, []string{"text_content"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.ProcessAny(ctx, req.(*ProcessAnyRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[ProcessAnyRequest]())
}

func (s *Service) registerFailureTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "handle_preprocessing_failure",
		Description: "Report an upstream document-pipeline failure and get recovery guidance.",
		InputSchema: inputSchema(map[string]any{
			"error_message": map[string]any{"type": "string", "description": "The upstream error"},
			"document_info": map[string]any{"type": "string", "description": "What is known about the document"},
		}, []string{"error_message"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		return s.PreprocessingFailure(ctx, req.(*FailureRequest))
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[FailureRequest]())
}

func (s *Service) registerValidateTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "validate",
		Description: "Return the configured owner number.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	endpoint := func(ctx context.Context, _ any) (any, error) {
		return s.Validate(ctx)
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeNone)
}

func (s *Service) registerListToolsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "list_tools",
		Description: "List the available document tools.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	endpoint := func(ctx context.Context, _ any) (any, error) {
		return s.ListTools(ctx)
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeNone)
}

func (s *Service) registerListFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "list_formats",
		Description: "List the supported document formats.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	endpoint := func(ctx context.Context, _ any) (any, error) {
		return s.ListFormats(ctx)
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decodeNone)
}
