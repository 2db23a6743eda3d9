// Package portfolio provides the persistence core of a personal-portfolio
// publishing service: a single-document store holding the profile,
// certificate and publication collections, a categorized file store for
// the uploaded assets, and a content service that combines the two with a
// consistent file lifecycle (files are stored before their references are
// persisted, and deleted only after their record is gone).
//
// Construct a Service with functional options:
//
//	docs, err := jsonfile.New("data/db.json")
//	if err != nil { ... }
//	svc, err := portfolio.New(
//	    portfolio.WithDocumentStore(docs),
//	    portfolio.WithFileStore(fsStore),
//	)
//
// Store implementations live in the docstore and filestore subpackages;
// authentication for the mutating surface lives in the auth subpackage.
package portfolio
