package model

import "time"

const (
	DAVNamespace = "DAV:"
)

// well known DAV: property names
const (
	PropDisplayName     = "displayname"
	PropContentLength   = "getcontentlength"
	PropContentType     = "getcontenttype"
	PropLastModified    = "getlastmodified"
	PropCreationDate    = "creationdate"
	PropETag            = "getetag"
	PropResourceType    = "resourcetype"
	PropLockDiscovery   = "lockdiscovery"
	PropSupportedLock   = "supportedlock"
	PropContentLanguage = "getcontentlanguage"
)

const (
	resourceTypeCollection = "collection"
)

type PropertyName struct {
	Namespace string
	Name      string
}

func DAVProperty(name string) PropertyName {
	return PropertyName{Namespace: DAVNamespace, Name: name}
}

func (p PropertyName) String() string {
	return p.Namespace + p.Name
}

type ResourceProperty struct {
	Namespace string
	Name      string
	Value     string
}

func (p ResourceProperty) PropertyName() PropertyName {
	return PropertyName{Namespace: p.Namespace, Name: p.Name}
}

// PropertyStatus pairs a property with the status the server reported for it.
type PropertyStatus struct {
	Property ResourceProperty
	Status   int
}

func (s *PropertyStatus) IsSuccess() bool {
	return s.Status >= 200 && s.Status < 300
}

type ResourceKind int

const (
	ResourceKindFile ResourceKind = iota
	ResourceKindCollection
)

func (k ResourceKind) String() string {
	if k == ResourceKindCollection {
		return "collection"
	}
	return "file"
}

// ResourceNode is one <response> of a multistatus document. All propstat
// blocks sharing the same href are folded into a single node, every property
// keeping its own status.
type ResourceNode struct {
	Href        string
	Kind        ResourceKind
	Status      int
	Description string
	Properties  map[PropertyName]*PropertyStatus

	DisplayName   string
	ContentLength int64
	ContentType   string
	LastModified  time.Time
	CreationDate  time.Time
	ETag          string
}

func NewResourceNode(href string) *ResourceNode {
	return &ResourceNode{
		Href:       href,
		Properties: make(map[PropertyName]*PropertyStatus),
	}
}

func (n *ResourceNode) IsCollection() bool {
	return n.Kind == ResourceKindCollection
}

func (n *ResourceNode) Property(namespace, name string) (*PropertyStatus, bool) {
	p, ok := n.Properties[PropertyName{Namespace: namespace, Name: name}]
	return p, ok
}

func IsCollectionMarker(name string) bool {
	return name == resourceTypeCollection
}
