// Package memhost is an in-memory implementation of the host capability
// surface.
//
// It models just enough of a document to render into and inspect. Ranges
// are live and follow the DOM boundary-point rules for insertion and
// removal. The CLI and the development inspector both render into it.
//
//	doc := memhost.NewDocument()
//	root := doc.CreateElement("div").(*memhost.Node)
//	_, err := vdom.Mount(doc, app, root)
//	fmt.Println(memhost.InnerHTML(root))
//
// Ranges stay registered with their document until Detach is called; the
// reconciler detaches the ranges of subtrees it discards.
package memhost
