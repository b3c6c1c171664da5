/*
Package folio turns unstructured product descriptions into three JSON documents:
a product page, an FAQ page and a comparison page against a fictional competitor.

The work is a fixed workflow of five steps sharing one state record:

	extract -> generate -> validate -> [retry: generate | proceed: analyze] -> render -> end

The validate step gates the generated questions. A hard gate requires a minimum
number of questions; an optional soft gate asks the generator for a PASS/FAIL
review. A failed gate sends the run back to generate with a stricter request
until the retry limit is reached. A second, independent limit bounds the total
number of step invocations.

# Usage

	gen, err := gemini.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := folio.New(
		folio.WithGenerator(gen),
		folio.WithSink(file.New("runs")),
	)
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Run(ctx, rawText)
	var runErr *domain.RunError
	if errors.As(err, &runErr) && runErr.Kind == domain.KindExhaustedRetries {
		// Render the best attempt anyway, flagged as degraded.
		state, err = eng.Degrade(ctx, *runErr.Best)
	}

The generator is the only collaborator with side effects. Use the offline
generator (pkg/adapters/offline) for deterministic runs without network access.
*/
package folio
