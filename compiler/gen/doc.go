// Package gen provides code generation for table definitions.
//
// Every definition of a load.Registry is turned into a Structure, and
// from it into three Go files:
//
//	{Name}Schema.go   // data access contract: queries, create, edit, delete
//	{Name}Entity.go   // entity struct with defaults and row filling
//	{Name}Column.go   // column name constants
//
// Definitions are split in two partitions, the application one and the
// framework one, each generated in its own target directory together
// with a tables.go index.
//
// # Errors
//
// The package uses structured error types:
//
//   - SchemaError: malformed definitions, the definition is skipped
//   - ConfigError: configuration and template errors, the run stops
//   - GenerationError: render, format and write errors
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	reg := load.NewRegistry(load.Source{Path: "./schemas"})
//	g, err := gen.New(reg,
//	    gen.WithTargets("./internal/schema", "./internal/system"),
//	    gen.WithTemplateDir("./templates"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := g.GenerateAll()
//
// Templates are looked up in the configured directories first, then in
// BuiltinTemplates. They are executed with text/template and receive a
// map context; the Schema output goes through the @param alignment pass
// before formatting.
package gen
