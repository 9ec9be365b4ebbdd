package codec

import (
	"fmt"

	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

const (
	davNamespace = model.DAVNamespace
)

// BuildPropfindBody returns the PROPFIND body. An implied allprop request has
// no body and yields nil.
func BuildPropfindBody(typ model.PropfindRequestType, props []model.PropertyName, namespaces map[string]string) ([]byte, error) {
	switch typ {
	case model.PropfindAllPropertiesImplied:
		return nil, nil
	case model.PropfindAllProperties:
		w := newXMLWriter()
		w.open(dav("propfind"), newNamespaceTable(nil).rootAttrs()...)
		w.empty(dav("allprop"))
		w.close(dav("propfind"))
		return w.bytes(), nil
	case model.PropfindNamedProperties:
		if len(props) == 0 {
			return nil, fmt.Errorf("named propfind without properties")
		}
		tab := newNamespaceTable(namespaces)
		w := newXMLWriter()
		w.open(dav("propfind"), tab.rootAttrs()...)
		w.open(dav("prop"))
		for _, p := range props {
			name, attrs := tab.name(p.Namespace, p.Name)
			w.empty(name, attrs...)
		}
		w.close(dav("prop"))
		w.close(dav("propfind"))
		return w.bytes(), nil
	}
	return nil, fmt.Errorf("unknown propfind request type:%d", typ)
}

// BuildProppatchBody returns a propertyupdate with a set section, a remove
// section or both.
func BuildProppatchBody(set []model.ResourceProperty, remove []model.PropertyName, namespaces map[string]string) ([]byte, error) {
	if len(set) == 0 && len(remove) == 0 {
		return nil, errs.ErrEmptyPropertyUpdate
	}
	tab := newNamespaceTable(namespaces)
	w := newXMLWriter()
	w.open(dav("propertyupdate"), tab.rootAttrs()...)
	if len(set) > 0 {
		w.open(dav("set"))
		w.open(dav("prop"))
		for _, p := range set {
			name, attrs := tab.name(p.Namespace, p.Name)
			w.element(name, p.Value, attrs...)
		}
		w.close(dav("prop"))
		w.close(dav("set"))
	}
	if len(remove) > 0 {
		w.open(dav("remove"))
		w.open(dav("prop"))
		for _, p := range remove {
			name, attrs := tab.name(p.Namespace, p.Name)
			w.empty(name, attrs...)
		}
		w.close(dav("prop"))
		w.close(dav("remove"))
	}
	w.close(dav("propertyupdate"))
	return w.bytes(), nil
}

// BuildLockBody returns a lockinfo for a write lock.
func BuildLockBody(scope model.LockScope, owner *model.LockOwner) []byte {
	w := newXMLWriter()
	w.open(dav("lockinfo"), newNamespaceTable(nil).rootAttrs()...)
	w.open(dav("lockscope"))
	if scope == model.LockScopeShared {
		w.empty(dav("shared"))
	} else {
		w.empty(dav("exclusive"))
	}
	w.close(dav("lockscope"))
	w.open(dav("locktype"))
	w.empty(dav("write"))
	w.close(dav("locktype"))
	if owner != nil && len(owner.Value) > 0 {
		w.open(dav("owner"))
		if owner.IsHref {
			w.element(dav("href"), owner.Value)
		} else {
			w.text(owner.Value)
		}
		w.close(dav("owner"))
	}
	w.close(dav("lockinfo"))
	return w.bytes()
}

// BuildSearchBody returns raw verbatim when given, otherwise a basicsearch
// selecting all properties below scope, filtered on displayname when a
// keyword is set.
func BuildSearchBody(scope string, keyword string, raw string) []byte {
	if len(raw) > 0 {
		return []byte(raw)
	}
	w := newXMLWriter()
	w.open(dav("searchrequest"), newNamespaceTable(nil).rootAttrs()...)
	w.open(dav("basicsearch"))
	w.open(dav("select"))
	w.empty(dav("allprop"))
	w.close(dav("select"))
	w.open(dav("from"))
	w.open(dav("scope"))
	w.element(dav("href"), scope)
	w.element(dav("depth"), "infinity")
	w.close(dav("scope"))
	w.close(dav("from"))
	if len(keyword) > 0 {
		w.open(dav("where"))
		w.open(dav("like"))
		w.open(dav("prop"))
		w.empty(dav(model.PropDisplayName))
		w.close(dav("prop"))
		w.element(dav("literal"), "%"+keyword+"%")
		w.close(dav("like"))
		w.close(dav("where"))
	}
	w.close(dav("basicsearch"))
	w.close(dav("searchrequest"))
	return w.bytes()
}
