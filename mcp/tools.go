package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/featured"
	"github.com/lukman83/showcase/internal/page"
	"github.com/lukman83/showcase/internal/translator"
)

type tools struct {
	app *app.App
}

func registerTools(s *server.MCPServer, t *tools) {
	s.AddTool(mcp.NewTool("list_positions",
		mcp.WithDescription("Show the six featured product positions and what occupies each"),
	), t.handleListPositions)

	s.AddTool(mcp.NewTool("set_position",
		mcp.WithDescription("Put a product into a featured position (1-6), replacing any current occupant"),
		mcp.WithNumber("position",
			mcp.Required(),
			mcp.Description("Position number, 1 to 6"),
		),
		mcp.WithNumber("product_id",
			mcp.Required(),
			mcp.Description("Product ID to feature"),
		),
	), t.handleSetPosition)

	s.AddTool(mcp.NewTool("remove_position",
		mcp.WithDescription("Clear a featured position. Requires confirm=true"),
		mcp.WithNumber("position",
			mcp.Required(),
			mcp.Description("Position number, 1 to 6"),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to actually remove"),
		),
	), t.handleRemovePosition)

	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List product categories (admin view, cached for a few minutes)"),
		mcp.WithBoolean("refresh",
			mcp.Description("Bypass the client cache"),
		),
	), t.handleListCategories)

	s.AddTool(mcp.NewTool("list_products",
		mcp.WithDescription("List products (admin view, cached for a few minutes)"),
		mcp.WithString("query",
			mcp.Description("Search text"),
		),
		mcp.WithNumber("category_id",
			mcp.Description("Category filter"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
		mcp.WithNumber("size",
			mcp.Description("Products per page (default: 20, max 100)"),
		),
		mcp.WithBoolean("refresh",
			mcp.Description("Bypass the client cache"),
		),
	), t.handleListProducts)

	s.AddTool(mcp.NewTool("dashboard_stats",
		mcp.WithDescription("Category, product, active product and stock totals"),
		mcp.WithBoolean("refresh",
			mcp.Description("Bypass the client cache"),
		),
	), t.handleDashboardStats)

	s.AddTool(mcp.NewTool("translate_text",
		mcp.WithDescription("Machine-translate storefront text from the source language"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to translate"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Target language code, e.g. en, ja, fr"),
		),
	), t.handleTranslateText)

	s.AddTool(mcp.NewTool("translate_html",
		mcp.WithDescription("Machine-translate the visible text of an HTML page"),
		mcp.WithString("html",
			mcp.Required(),
			mcp.Description("HTML document"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Target language code"),
		),
	), t.handleTranslateHTML)

	s.AddTool(mcp.NewTool("lookup_message",
		mcp.WithDescription("Look up a static UI string by key, e.g. nav.home"),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Catalog key"),
		),
		mcp.WithString("lang",
			mcp.Description("zh or en (default: the preferred UI language)"),
		),
	), t.handleLookupMessage)
}

type positionJSON struct {
	Position    int    `json:"position"`
	State       string `json:"state"`
	RecordID    int    `json:"record_id,omitempty"`
	ProductID   int    `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
}

func positionsResult(slots []featured.Slot) *mcp.CallToolResult {
	out := make([]positionJSON, len(slots))
	for i, s := range slots {
		out[i] = positionJSON{Position: s.Position, State: s.State.String()}
		if s.Record != nil {
			out[i].RecordID = s.Record.ID
			out[i].ProductID = s.Record.ProductID
			out[i].ProductName = s.Record.ProductName
		}
	}
	return jsonResult(out)
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// toolError turns a service error into a tool error message. API errors
// carry a message meant for people; everything else is wrapped.
func toolError(action string, err error) *mcp.CallToolResult {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", action, apiErr.Message))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err))
}

func (t *tools) handleListPositions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slots, err := t.app.Featured.LoadPositions(ctx)
	if err != nil {
		return toolError("load positions", err), nil
	}
	return positionsResult(slots), nil
}

func (t *tools) handleSetPosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position := request.GetInt("position", 0)
	productID := request.GetInt("product_id", 0)
	if productID <= 0 {
		return mcp.NewToolResultError("product_id is required"), nil
	}
	if err := t.app.Featured.SetProduct(ctx, productID, position); err != nil {
		return toolError("set position", err), nil
	}
	return positionsResult(t.app.Featured.Positions()), nil
}

func (t *tools) handleRemovePosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position := request.GetInt("position", 0)
	if !request.GetBool("confirm", false) {
		return mcp.NewToolResultError(fmt.Sprintf("removing position %d needs confirm=true", position)), nil
	}
	if err := t.app.Featured.RemovePosition(ctx, position); err != nil {
		return toolError("remove position", err), nil
	}
	return positionsResult(t.app.Featured.Positions()), nil
}

func (t *tools) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats, err := t.app.Catalog.GetCachedCategories(ctx, request.GetBool("refresh", false))
	if err != nil {
		return toolError("list categories", err), nil
	}
	return jsonResult(cats), nil
}

func (t *tools) handleListProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := api.ProductQuery{
		Query:      request.GetString("query", ""),
		CategoryID: request.GetInt("category_id", 0),
		Page:       request.GetInt("page", 1),
		Size:       request.GetInt("size", 20),
	}
	result, err := t.app.Catalog.GetCachedProducts(ctx, q, request.GetBool("refresh", false))
	if err != nil {
		return toolError("list products", err), nil
	}
	return jsonResult(result), nil
}

func (t *tools) handleDashboardStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.app.Catalog.GetCachedStats(ctx, request.GetBool("refresh", false))
	if err != nil {
		return toolError("dashboard stats", err), nil
	}
	return jsonResult(stats), nil
}

func (t *tools) handleTranslateText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	target := request.GetString("target", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	if !translator.IsSupported(target) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported target language %q", target)), nil
	}
	out, err := t.app.Translator.Translate(ctx, text, target)
	if err != nil {
		return toolError("translate", err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (t *tools) handleTranslateHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := request.GetString("target", "")
	if !translator.IsSupported(target) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported target language %q", target)), nil
	}
	doc, err := page.ParseString(request.GetString("html", ""))
	if err != nil {
		return toolError("parse html", err), nil
	}
	report := t.app.Translator.TranslateDocument(ctx, doc, target, t.app.Config.MaxTextLength)
	return jsonResult(map[string]any{
		"report": report,
		"html":   doc.String(),
	}), nil
}

func (t *tools) handleLookupMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")
	if key == "" {
		return mcp.NewToolResultError("key is required"), nil
	}
	lang := request.GetString("lang", "")
	if lang == "" {
		lang = t.app.Language()
	} else {
		lang = t.app.Languages.Match(lang)
	}
	msg, ok := t.app.Messages.Lookup(lang, key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no message for %q in %s", key, lang)), nil
	}
	return mcp.NewToolResultText(msg), nil
}
