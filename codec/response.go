package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

// element names below match on local name only, servers disagree on
// prefixes and some forget the DAV: namespace entirely.

type multistatusXML struct {
	XMLName   xml.Name      `xml:"multistatus"`
	Responses []responseXML `xml:"response"`
}

type responseXML struct {
	Hrefs       []string      `xml:"href"`
	Status      string        `xml:"status"`
	Propstats   []propstatXML `xml:"propstat"`
	Description string        `xml:"responsedescription"`
}

type propstatXML struct {
	Prop   *propXML `xml:"prop"`
	Status string   `xml:"status"`
}

type propXML struct {
	Values []propValueXML `xml:",any"`
}

type propValueXML struct {
	XMLName  xml.Name
	Inner    string         `xml:",innerxml"`
	Text     string         `xml:",chardata"`
	Children []propValueXML `xml:",any"`
}

func (v *propValueXML) value() string {
	if len(v.Children) > 0 {
		return strings.TrimSpace(v.Inner)
	}
	return v.Text
}

type lockDiscoveryXML struct {
	XMLName     xml.Name        `xml:"prop"`
	ActiveLocks []activeLockXML `xml:"lockdiscovery>activelock"`
}

type activeLockXML struct {
	LockScope lockScopeXML `xml:"lockscope"`
	Depth     string       `xml:"depth"`
	Owner     *ownerXML    `xml:"owner"`
	Timeout   string       `xml:"timeout"`
	Tokens    []string     `xml:"locktoken>href"`
	Root      string       `xml:"lockroot>href"`
}

type lockScopeXML struct {
	Exclusive *struct{} `xml:"exclusive"`
	Shared    *struct{} `xml:"shared"`
}

type ownerXML struct {
	Href  string `xml:"href"`
	Text  string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

func newDecoder(body []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return dec
}

func decode(body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &errs.ParseError{Body: body, Err: fmt.Errorf("empty body")}
	}
	if err := newDecoder(body).Decode(out); err != nil {
		return &errs.ParseError{Body: body, Err: err}
	}
	return nil
}

func isDAVSpace(space string) bool {
	return space == davNamespace || len(space) == 0
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// ParseMultistatus decodes a multistatus body into one node per distinct
// href, in document order. Several propstat blocks, or several response
// elements, for the same href are merged and each property keeps its own
// status.
func ParseMultistatus(body []byte) ([]*model.ResourceNode, error) {
	ms := &multistatusXML{}
	if err := decode(body, ms); err != nil {
		return nil, err
	}
	nodes := make([]*model.ResourceNode, 0, len(ms.Responses))
	index := make(map[string]*model.ResourceNode, len(ms.Responses))
	for i := range ms.Responses {
		rsp := &ms.Responses[i]
		status := davheader.ParseStatusLine(rsp.Status)
		for _, href := range rsp.Hrefs {
			href = strings.TrimSpace(href)
			if len(href) == 0 {
				continue
			}
			node, ok := index[href]
			if !ok {
				node = model.NewResourceNode(href)
				index[href] = node
				nodes = append(nodes, node)
			}
			if status != 0 {
				node.Status = status
			}
			if desc := strings.TrimSpace(rsp.Description); len(desc) > 0 {
				node.Description = desc
			}
			for j := range rsp.Propstats {
				applyPropstat(node, &rsp.Propstats[j])
			}
		}
	}
	return nodes, nil
}

func applyPropstat(node *model.ResourceNode, ps *propstatXML) {
	if ps.Prop == nil {
		return
	}
	status := davheader.ParseStatusLine(ps.Status)
	for i := range ps.Prop.Values {
		v := &ps.Prop.Values[i]
		name := model.PropertyName{Namespace: v.XMLName.Space, Name: v.XMLName.Local}
		node.Properties[name] = &model.PropertyStatus{
			Property: model.ResourceProperty{
				Namespace: name.Namespace,
				Name:      name.Name,
				Value:     v.value(),
			},
			Status: status,
		}
		if isSuccess(status) && isDAVSpace(name.Namespace) {
			promote(node, v)
		}
	}
}

func promote(node *model.ResourceNode, v *propValueXML) {
	text := strings.TrimSpace(v.Text)
	switch v.XMLName.Local {
	case model.PropDisplayName:
		node.DisplayName = text
	case model.PropContentLength:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			node.ContentLength = n
		}
	case model.PropContentType:
		node.ContentType = text
	case model.PropETag:
		node.ETag = text
	case model.PropLastModified:
		if t, ok := ParseDate(text); ok {
			node.LastModified = t
		}
	case model.PropCreationDate:
		if t, ok := ParseDate(text); ok {
			node.CreationDate = t
		}
	case model.PropResourceType:
		for _, child := range v.Children {
			if model.IsCollectionMarker(child.XMLName.Local) {
				node.Kind = model.ResourceKindCollection
			}
		}
	}
}

// ParseProppatch decodes the multistatus answer of a PROPPATCH into the
// status of every touched property.
func ParseProppatch(body []byte) (*model.ProppatchResponse, error) {
	ms := &multistatusXML{}
	if err := decode(body, ms); err != nil {
		return nil, err
	}
	rs := &model.ProppatchResponse{
		Properties: make(map[model.PropertyName]int),
	}
	for _, rsp := range ms.Responses {
		if len(rs.Href) == 0 && len(rsp.Hrefs) > 0 {
			rs.Href = strings.TrimSpace(rsp.Hrefs[0])
		}
		for _, ps := range rsp.Propstats {
			if ps.Prop == nil {
				continue
			}
			status := davheader.ParseStatusLine(ps.Status)
			for _, v := range ps.Prop.Values {
				rs.Properties[model.PropertyName{Namespace: v.XMLName.Space, Name: v.XMLName.Local}] = status
			}
		}
	}
	return rs, nil
}

// ParseLockDiscovery decodes the <prop><lockdiscovery> answer of a LOCK.
func ParseLockDiscovery(body []byte) ([]*model.LockInfo, error) {
	ld := &lockDiscoveryXML{}
	if err := decode(body, ld); err != nil {
		return nil, err
	}
	if len(ld.ActiveLocks) == 0 {
		return nil, &errs.ParseError{Body: body, Err: errs.ErrNoActiveLock}
	}
	rs := make([]*model.LockInfo, 0, len(ld.ActiveLocks))
	for _, al := range ld.ActiveLocks {
		info := &model.LockInfo{
			Scope:   model.LockScopeExclusive,
			Depth:   model.ParseLockApplyTo(strings.TrimSpace(al.Depth)),
			Timeout: davheader.ParseTimeout(al.Timeout),
			Root:    strings.TrimSpace(al.Root),
		}
		if al.LockScope.Shared != nil {
			info.Scope = model.LockScopeShared
		}
		if len(al.Tokens) > 0 {
			info.Token = strings.TrimSpace(al.Tokens[0])
		}
		if al.Owner != nil {
			info.Owner = parseOwner(al.Owner)
		}
		rs = append(rs, info)
	}
	return rs, nil
}

func parseOwner(o *ownerXML) model.LockOwner {
	if href := strings.TrimSpace(o.Href); len(href) > 0 {
		return model.LockOwner{Value: href, IsHref: true}
	}
	if text := strings.TrimSpace(o.Text); len(text) > 0 {
		return model.LockOwner{Value: text}
	}
	return model.LockOwner{Value: strings.TrimSpace(o.Inner)}
}
