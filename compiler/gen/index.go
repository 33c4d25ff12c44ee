package gen

import (
	"bytes"

	"github.com/dave/jennifer/jen"
)

// IndexFile is the name of the file listing the generated schemas of a
// partition.
const IndexFile = "tables.go"

// writeIndex writes the table and schema lists of a partition.
func (g *Generator) writeIndex(p *partition, generated []*Structure) error {
	f := jen.NewFile(p.pkg)
	f.HeaderComment(g.cfg.Header)
	f.Comment("Tables lists the table of every generated schema, in definition order.")
	f.Var().Id("Tables").Op("=").Index().String().ValuesFunc(func(grp *jen.Group) {
		for _, s := range generated {
			grp.Lit(s.Table)
		}
	})
	f.Comment("Schemas lists the generated schema names, in definition order.")
	f.Var().Id("Schemas").Op("=").Index().String().ValuesFunc(func(grp *jen.Group) {
		for _, s := range generated {
			grp.Lit(s.Schema)
		}
	})
	var b bytes.Buffer
	if err := f.Render(&b); err != nil {
		return NewGenerationError("index", IndexFile, "cannot render index", err)
	}
	if err := g.cfg.Writer.Write(p.target, IndexFile, b.Bytes()); err != nil {
		return NewGenerationError("index", IndexFile, "cannot write index", err)
	}
	return nil
}
