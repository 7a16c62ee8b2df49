// Package gen resolves annotated records and generates their builders and
// generators.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	load.Package (records and raw directives)
//	        ↓
//	   ParseDirectives (one FieldDirective per field)
//	        ↓
//	   Graph (wrapper chains and strategies resolved)
//	        ↓
//	   JenniferGenerator (one boulder_gen.go per package)
//
// # Key Types
//
//   - Graph: the records of all loaded packages, resolved and validated
//   - Type: one record with its result parameter and fields
//   - Field: the setter and slot names of a field and the Plan of each slot
//   - Plan: the Strategy of a slot, repeated for sequences
//   - WrapperChain: the layers peeled off a nested record type
//   - Config: global configuration for code generation
//
// # Strategies
//
// The builder slot of a field takes the first of:
//
//	//boulder:default <expr>          value
//	//boulder:buildable [F=expr, ...]  nested builder
//	(nothing)                          zero value
//
// The generator slot takes the first of:
//
//	//boulder:generator <expr>           rule
//	//boulder:generatable [F=expr, ...]  nested generator
//	the builder strategy, evaluated again for every value
//
// //boulder:sequence <n> and //boulder:sequence_generator <rule> turn a slice
// field into a sequence whose elements use the strategies above. Every
// directive has a _with_context form taking the accessor of records
// annotated with //boulder:context.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - DirectiveError: malformed or unknown directives
//   - ResolutionError: fields no builder or generator chain can serve
//   - ConfigError: configuration errors
//   - GenerationError: code generation and write errors
//   - ValidationError: generated names that clash
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, pkgs...)
//	if err != nil {
//	    if gen.IsResolutionError(err) {
//	        // A nested record has no derived builder.
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithOutput("boulder_gen.go"),
//	    gen.WithFeatures(gen.FeatureSnapshot),
//	    gen.WithLogger(logger),
//	)
//
// # Features
//
//   - assertions: compile-time interface checks (default on)
//   - funcsetters: XFunc setters taking plain functions (default on)
//   - snapshot: skip packages whose records did not change
package gen
