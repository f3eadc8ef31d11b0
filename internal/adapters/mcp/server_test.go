package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/localsettings"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestGetSettings(t *testing.T) {
	s := NewServer(localsettings.New(), nil)

	res, err := s.handleGetSettings(context.Background(), callRequest("get_settings", map[string]any{"account": "alice"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got domain.Settings
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, domain.DefaultSettings(), got)

	res, err = s.handleGetSettings(context.Background(), callRequest("get_settings", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestChangeSetting(t *testing.T) {
	engine := localsettings.New()
	s := NewServer(engine, nil)
	ctx := context.Background()

	res, err := s.handleChangeSetting(ctx, callRequest("change_setting", map[string]any{
		"account": "alice", "path": "media.letterbox", "value": "false",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	got, err := engine.Settings(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, got.Media.Letterbox)

	res, err = s.handleChangeSetting(ctx, callRequest("change_setting", map[string]any{
		"account": "alice", "path": "media.letterbox", "value": "maybe",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleChangeSetting(ctx, callRequest("change_setting", map[string]any{
		"account": "alice", "path": "no.such.path", "value": "x",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), domain.ErrUnknownPath.Error())
}

func TestInteract(t *testing.T) {
	engine := localsettings.New()
	s := NewServer(engine, nil)
	ctx := context.Background()

	res, err := s.handleInteract(ctx, callRequest("interact", map[string]any{
		"account": "bob", "field": "content_warnings.filter", "text": "spoiler",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "filter depends on auto_unfold")
	assert.Contains(t, resultText(t, res), domain.ErrFieldDisabled.Error())

	res, err = s.handleInteract(ctx, callRequest("interact", map[string]any{
		"account": "bob", "field": "content_warnings.auto_unfold", "checked": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	res, err = s.handleInteract(ctx, callRequest("interact", map[string]any{
		"account": "bob", "field": "content_warnings.filter", "text": "spoiler",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	got, err := engine.Settings(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "spoiler", got.ContentWarnings.Filter)

	res, err = s.handleInteract(ctx, callRequest("interact", map[string]any{
		"account": "bob", "field": "layout",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "no input member")
}

func TestRenderPageAndReset(t *testing.T) {
	engine := localsettings.New()
	s := NewServer(engine, nil)
	ctx := context.Background()

	page, err := s.handleRenderPage(ctx, mcp.CallToolRequest{}, PageArgs{Account: "carol", Page: 4})
	require.NoError(t, err)
	assert.Equal(t, "Media", page.Title)

	_, err = s.handleRenderPage(ctx, mcp.CallToolRequest{}, PageArgs{})
	assert.Error(t, err)

	_, err = engine.Change(ctx, "carol", domain.NewChange("stretch", domain.Bool(false)))
	require.NoError(t, err)

	res, err := s.handleReset(ctx, callRequest("reset_settings", map[string]any{"account": "carol"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	got, err := engine.Settings(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, got.Stretch)
}

func TestAccountsResource(t *testing.T) {
	engine := localsettings.New()
	s := NewServer(engine, nil)
	ctx := context.Background()

	_, err := engine.Change(ctx, "dave", domain.NewChange("stretch", domain.Bool(false)))
	require.NoError(t, err)

	contents, err := s.handleAccounts(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, AccountsURI, text.URI)
	assert.JSONEq(t, `["dave"]`, text.Text)
}

func TestToolsList(t *testing.T) {
	s := NewServer(localsettings.New(), nil)

	msg := s.mcpServer.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))

	var names []string
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_settings", "render_page", "change_setting", "interact", "reset_settings"}, names)
}
