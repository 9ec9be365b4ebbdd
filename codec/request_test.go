package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

const testHeader = `<?xml version="1.0" encoding="utf-8"?>`

func TestPropfindBody(t *testing.T) {
	raw, err := BuildPropfindBody(model.PropfindAllPropertiesImplied, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = BuildPropfindBody(model.PropfindAllProperties, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, testHeader+`<D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`, string(raw))

	props := []model.PropertyName{
		model.DAVProperty(model.PropDisplayName),
		{Namespace: "urn:x", Name: "color"},
		{Namespace: "urn:y", Name: "size"},
	}
	raw, err = BuildPropfindBody(model.PropfindNamedProperties, props, map[string]string{"Z": "urn:x", "A": "urn:a"})
	assert.NoError(t, err)
	assert.Equal(t, testHeader+`<D:propfind xmlns:D="DAV:" xmlns:A="urn:a" xmlns:Z="urn:x"><D:prop><D:displayname/><Z:color/><size xmlns="urn:y"/></D:prop></D:propfind>`, string(raw))

	_, err = BuildPropfindBody(model.PropfindNamedProperties, nil, nil)
	assert.Error(t, err)
}

func TestPropfindBodyDeterministic(t *testing.T) {
	props := []model.PropertyName{{Namespace: "urn:x", Name: "a"}, {Namespace: "urn:y", Name: "b"}}
	ns := map[string]string{"X": "urn:x", "Y": "urn:y", "W": "urn:w", "V": "urn:x"}
	first, err := BuildPropfindBody(model.PropfindNamedProperties, props, ns)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		next, err := BuildPropfindBody(model.PropfindNamedProperties, props, ns)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
	// the lowest prefix wins when two prefixes share a namespace
	assert.Contains(t, string(first), "<V:a/>")
	assert.NotContains(t, string(first), "\n")
}

func TestProppatchBody(t *testing.T) {
	set := []model.ResourceProperty{{Namespace: "urn:x", Name: "X", Value: "v1"}}
	remove := []model.PropertyName{{Namespace: "urn:x", Name: "Y"}}
	raw, err := BuildProppatchBody(set, remove, map[string]string{"Z": "urn:x"})
	assert.NoError(t, err)
	body := string(raw)
	assert.Equal(t, testHeader+`<D:propertyupdate xmlns:D="DAV:" xmlns:Z="urn:x"><D:set><D:prop><Z:X>v1</Z:X></D:prop></D:set><D:remove><D:prop><Z:Y/></D:prop></D:remove></D:propertyupdate>`, body)
	assert.Equal(t, 1, strings.Count(body, "<D:set>"))
	assert.Equal(t, 1, strings.Count(body, "<D:remove>"))

	raw, err = BuildProppatchBody(nil, remove, nil)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "<D:set>")
	assert.Contains(t, string(raw), `<D:remove><D:prop><Y xmlns="urn:x"/></D:prop></D:remove>`)

	raw, err = BuildProppatchBody([]model.ResourceProperty{{Namespace: "urn:x", Name: "X", Value: "a<b&c"}}, nil, nil)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `<X xmlns="urn:x">a&lt;b&amp;c</X>`)
	assert.NotContains(t, string(raw), "<D:remove>")

	_, err = BuildProppatchBody(nil, nil, nil)
	assert.ErrorIs(t, err, errs.ErrEmptyPropertyUpdate)
}

func TestLockBody(t *testing.T) {
	body := string(BuildLockBody(model.LockScopeExclusive, nil))
	assert.Equal(t, testHeader+`<D:lockinfo xmlns:D="DAV:"><D:lockscope><D:exclusive/></D:lockscope><D:locktype><D:write/></D:locktype></D:lockinfo>`, body)
	assert.NotContains(t, body, "owner")

	body = string(BuildLockBody(model.LockScopeShared, model.HrefOwner("http://example.org/~ejw/contact.html")))
	assert.Contains(t, body, `<D:lockscope><D:shared/></D:lockscope>`)
	assert.Contains(t, body, `<D:owner><D:href>http://example.org/~ejw/contact.html</D:href></D:owner>`)

	body = string(BuildLockBody(model.LockScopeExclusive, model.TextOwner("alice")))
	assert.Contains(t, body, `<D:owner>alice</D:owner>`)
}

func TestSearchBody(t *testing.T) {
	raw := `<d:searchrequest xmlns:d="DAV:"><custom/></d:searchrequest>`
	assert.Equal(t, raw, string(BuildSearchBody("/files", "x", raw)))

	body := string(BuildSearchBody("/files/", "", ""))
	assert.Equal(t, testHeader+`<D:searchrequest xmlns:D="DAV:"><D:basicsearch><D:select><D:allprop/></D:select><D:from><D:scope><D:href>/files/</D:href><D:depth>infinity</D:depth></D:scope></D:from></D:basicsearch></D:searchrequest>`, body)
	assert.NotContains(t, body, "<D:where>")

	body = string(BuildSearchBody("/files/", "report", ""))
	assert.Contains(t, body, `<D:where><D:like><D:prop><D:displayname/></D:prop><D:literal>%report%</D:literal></D:like></D:where>`)
}
