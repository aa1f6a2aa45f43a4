package table

import (
	"github.com/sirupsen/logrus"

	"scrolltable/internal/future"
)

// Navigator scrolls the body so a given row sits right below the header.
type Navigator struct {
	surface      Surface
	gate         *Gate
	headersFixed *future.Future
	log          logrus.FieldLogger
}

// ScrollToRow scrolls to the single row identified by id. Missing and
// ambiguous ids are ignored. Offsets are read only once the table is visible
// and the headers were fixed at least once.
func (n *Navigator) ScrollToRow(id string) {
	rows := n.surface.FindRows(id)
	if len(rows) != 1 {
		n.log.WithFields(logrus.Fields{"row": id, "matches": len(rows)}).Debug("scroll request ignored")
		return
	}
	row := rows[0]
	future.All(n.gate.WaitForRender(), n.headersFixed).Then(func() {
		top := n.surface.ScrollTop() + row.OffsetTop() - n.surface.HeaderSpacerHeight()
		n.surface.SetScrollTop(top)
		n.log.WithFields(logrus.Fields{"row": id, "top": top}).Debug("scrolled to row")
	})
}
