package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davbin/internal/types"
	"github.com/davbin/internal/webdav/status"
)

// ========================================
// Name
// ========================================

func TestNewName(t *testing.T) {
	tests := []struct {
		name    string
		space   string
		local   string
		prefix  string
		wantErr bool
	}{
		{name: "合法元素", space: NamespaceDAV, local: "multistatus", prefix: "D"},
		{name: "无前缀", space: NamespaceDAV, local: "href"},
		{name: "缺少命名空间", local: "href", wantErr: true},
		{name: "空元素名", space: NamespaceDAV, wantErr: true},
		{name: "元素名含冒号", space: NamespaceDAV, local: "D:href", wantErr: true},
		{name: "数字开头", space: NamespaceDAV, local: "1href", wantErr: true},
		{name: "非法前缀", space: NamespaceDAV, local: "href", prefix: "a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewName(tt.space, tt.local, tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.local, n.Local)
		})
	}
}

func TestName_Qualified(t *testing.T) {
	assert.Equal(t, "D:lockdiscovery", ElemLockdiscovery.Qualified())
	assert.Equal(t, "href", Name{Space: NamespaceDAV, Local: "href"}.Qualified())
}

func TestName_XMLName(t *testing.T) {
	type hrefDoc struct {
		XMLName xml.Name
		Value   string `xml:",chardata"`
	}

	out, err := xml.Marshal(hrefDoc{XMLName: ElemHref.XMLName(), Value: "/a"})
	require.NoError(t, err)
	assert.Equal(t, `<href xmlns="DAV:">/a</href>`, string(out))

	var doc hrefDoc
	require.NoError(t, xml.Unmarshal([]byte(`<D:href xmlns:D="DAV:">/b</D:href>`), &doc))
	assert.Equal(t, ElemHref.XMLName(), doc.XMLName)
	assert.Equal(t, "/b", doc.Value)
}

func TestProperties_ReturnsCopy(t *testing.T) {
	props := Properties()
	require.Len(t, props, 11)
	props[0] = "changed"
	assert.Equal(t, "creationdate", Properties()[0])
	assert.True(t, IsProperty("getetag"))
	assert.False(t, IsProperty("prop"))
}

// ========================================
// Multistatus
// ========================================

type msResponse struct {
	Href   string `xml:"href"`
	Status string `xml:"status"`
}

type msDocument struct {
	XMLName   xml.Name     `xml:"DAV: multistatus"`
	Responses []msResponse `xml:"DAV: response"`
}

func TestRenderMultistatus(t *testing.T) {
	entries := []types.MultistatusEntry{
		{Code: 423, Target: "http://localhost/webdav/dest/R0"},
		{Code: 507, Target: "http://localhost/webdav/dest/R1"},
		{Code: 403, Target: "http://localhost/webdav/dest/R2"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderMultistatus(&buf, entries))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<D:multistatus xmlns:D="DAV:">`)
	assert.Equal(t, 1, strings.Count(out, `xmlns:D=`))

	var doc msDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Responses, 3)
	assert.Equal(t, "http://localhost/webdav/dest/R0", doc.Responses[0].Href)
	assert.Equal(t, "HTTP/1.1 423 Locked", doc.Responses[0].Status)
	assert.Equal(t, "HTTP/1.1 507 Insufficient Storage", doc.Responses[1].Status)
	assert.Equal(t, "HTTP/1.1 403 Forbidden", doc.Responses[2].Status)
}

func TestRenderMultistatus_UnknownCode(t *testing.T) {
	var buf bytes.Buffer
	err := RenderMultistatus(&buf, []types.MultistatusEntry{{Code: 423, Target: "a"}, {Code: 999, Target: "b"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrUnknown))
	assert.Zero(t, buf.Len(), "nothing may be written when a code is unknown")
}

func TestMultistatusWriter_EscapesTarget(t *testing.T) {
	var buf bytes.Buffer
	mw := NewMultistatusWriter(&buf)
	require.NoError(t, mw.Write(types.MultistatusEntry{Code: 409, Target: "http://h/a?x=1&y=<2>"}))
	require.NoError(t, mw.Close())
	require.NoError(t, mw.Close())

	assert.Contains(t, buf.String(), "x=1&amp;y=&lt;2&gt;")
	assert.Error(t, mw.Write(types.MultistatusEntry{Code: 409}))

	var doc msDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "http://h/a?x=1&y=<2>", doc.Responses[0].Href)
}

// ========================================
// Lock discovery
// ========================================

func TestRenderLockDiscovery(t *testing.T) {
	token := uuid.MustParse("6f1a3c2e-8d4b-4f7a-9c1e-2b3d4e5f6a7b")

	tests := []struct {
		name        string
		descriptor  types.LockDescriptor
		contains    []string
		notContains []string
	}{
		{
			name: "独占写锁",
			descriptor: types.LockDescriptor{
				Scope:   types.LockScopeExclusive,
				Type:    "write",
				Owner:   "http://example.org/~ejw/contact.html",
				Timeout: 3600 * time.Second,
				Token:   token,
			},
			contains: []string{
				"<D:locktype><D:write></D:write></D:locktype>",
				"<D:lockscope><D:exclusive></D:exclusive></D:lockscope>",
				"<D:owner><D:href>http://example.org/~ejw/contact.html</D:href></D:owner>",
				"<D:timeout>Seconds-3600</D:timeout>",
				"<D:locktoken><D:href>opaquelocktoken:6f1a3c2e-8d4b-4f7a-9c1e-2b3d4e5f6a7b</D:href></D:locktoken>",
			},
		},
		{
			name:        "共享锁且无类型",
			descriptor:  types.LockDescriptor{Scope: types.LockScopeShared, Token: token},
			contains:    []string{"<D:lockscope><D:shared></D:shared></D:lockscope>"},
			notContains: []string{"locktype"},
		},
		{
			name:        "非write类型不输出locktype",
			descriptor:  types.LockDescriptor{Type: "read", Token: token},
			notContains: []string{"locktype", "<D:write>"},
		},
		{
			name:       "缺省owner与超时",
			descriptor: types.LockDescriptor{Type: "write"},
			contains: []string{
				"<D:owner><D:href>" + DefaultLockOwner + "</D:href></D:owner>",
				"<D:timeout>Seconds-120</D:timeout>",
				"opaquelocktoken:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderLockDiscovery(&buf, tt.descriptor))
			out := buf.String()

			assert.Contains(t, out, `<D:prop xmlns:D="DAV:"><D:lockdiscovery><D:activelock>`)
			assert.True(t, strings.HasSuffix(out, "</D:activelock></D:lockdiscovery></D:prop>"))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderLockDiscovery_ChildOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLockDiscovery(&buf, types.LockDescriptor{Type: "write"}))
	out := buf.String()

	order := []string{"<D:locktype>", "<D:lockscope>", "<D:owner>", "<D:timeout>", "<D:locktoken>"}
	last := -1
	for _, tag := range order {
		idx := strings.Index(out, tag)
		require.NotEqual(t, -1, idx, tag)
		assert.Greater(t, idx, last, tag)
		last = idx
	}
}

func TestRenderLockDiscovery_FreshTokens(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, RenderLockDiscovery(&a, types.LockDescriptor{}))
	require.NoError(t, RenderLockDiscovery(&b, types.LockDescriptor{}))
	assert.NotEqual(t, a.String(), b.String())
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	token := uuid.New()
	d := WithDefaults(types.LockDescriptor{Owner: "me", Timeout: time.Minute, Token: token})
	assert.Equal(t, "me", d.Owner)
	assert.Equal(t, time.Minute, d.Timeout)
	assert.Equal(t, token, d.Token)
	assert.Equal(t, "opaquelocktoken:"+token.String(), TokenURI(d.Token))
}
