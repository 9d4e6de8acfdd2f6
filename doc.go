// Package ingres answers natural-language questions about regional
// groundwater assessment records.
//
// An Engine is opened once at startup. It loads the assessment corpus,
// loads or builds the semantic index over it, and then resolves each
// query through a fixed pipeline: state name, district name, district
// comparison, and finally nearest-neighbor search over record
// descriptions. The engine is immutable after Open and safe for
// concurrent use.
//
//	engine, err := ingres.Open(ctx, "data/groundwater.csv",
//	    ingres.WithAIConfig(ai.DefaultConfig()),
//	    ingres.WithIndexPaths(index.Paths{Index: "artifacts/ingres.index", Metadata: "artifacts/ingres_meta.json"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	result, err := engine.Search(ctx, "groundwater in Pune 2023-2024", []int{2023, 2024})
//
// Ask wraps Search with year extraction, a summary report and translation
// of the summary into the language the question was written in.
package ingres
