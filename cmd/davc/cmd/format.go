package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/davkit/model"
)

func parsePropfindDepth(v string) (model.PropfindApplyTo, error) {
	switch strings.ToLower(v) {
	case "0":
		return model.PropfindApplyToResource, nil
	case "1", "":
		return model.PropfindApplyToResourceAndChildren, nil
	case "infinity":
		return model.PropfindApplyToResourceAndDescendants, nil
	}
	return model.PropfindApplyTo{}, fmt.Errorf("invalid depth:%s", v)
}

// parseLockTimeout maps seconds to a lock timeout, -1 is infinite and 0
// leaves the choice to the server.
func parseLockTimeout(sec int64) (model.LockTimeout, error) {
	switch {
	case sec < -1:
		return 0, fmt.Errorf("invalid lock timeout:%d", sec)
	case sec == -1:
		return model.InfiniteLockTimeout, nil
	}
	return model.LockTimeoutOf(time.Duration(sec) * time.Second), nil
}

func parseAssignments(ns string, items []string) ([]model.ResourceProperty, error) {
	rs := make([]model.ResourceProperty, 0, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok || len(name) == 0 {
			return nil, fmt.Errorf("invalid property assignment:%s", item)
		}
		rs = append(rs, model.ResourceProperty{Namespace: ns, Name: name, Value: value})
	}
	return rs, nil
}

func kindFlag(n *model.ResourceNode) string {
	if n.IsCollection() {
		return "d"
	}
	return "-"
}

func modTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func writeNodes(w io.Writer, nodes []*model.ResourceNode) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range nodes {
		size := "-"
		if !n.IsCollection() {
			size = humanize.IBytes(uint64(n.ContentLength))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", kindFlag(n), size, modTime(n.LastModified), n.Href)
	}
	return tw.Flush()
}

func writeNodeDetail(w io.Writer, n *model.ResourceNode) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "href:\t%s\n", n.Href)
	fmt.Fprintf(tw, "kind:\t%s\n", n.Kind)
	if !n.IsCollection() {
		fmt.Fprintf(tw, "size:\t%s (%d bytes)\n", humanize.IBytes(uint64(n.ContentLength)), n.ContentLength)
	}
	if len(n.ContentType) > 0 {
		fmt.Fprintf(tw, "content-type:\t%s\n", n.ContentType)
	}
	if len(n.ETag) > 0 {
		fmt.Fprintf(tw, "etag:\t%s\n", n.ETag)
	}
	if !n.LastModified.IsZero() {
		fmt.Fprintf(tw, "modified:\t%s (%s)\n", n.LastModified.Format(time.RFC3339), humanize.Time(n.LastModified))
	}
	if !n.CreationDate.IsZero() {
		fmt.Fprintf(tw, "created:\t%s\n", n.CreationDate.Format(time.RFC3339))
	}
	names := make([]model.PropertyName, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	for _, name := range names {
		p := n.Properties[name]
		fmt.Fprintf(tw, "prop %s:\t[%d] %s\n", name.String(), p.Status, p.Property.Value)
	}
	return tw.Flush()
}

func writeFailedMembers(w io.Writer, rsp *model.Response) {
	for _, n := range rsp.Resources {
		fmt.Fprintf(w, "failed: %s [%d] %s\n", n.Href, n.Status, n.Description)
	}
}
