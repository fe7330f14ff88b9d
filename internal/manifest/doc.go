// Package manifest reconciles Vagrant box catalogs (metadata.json) with the
// box tree found on disk and handles their persistence.
//
// # Directory Layout
//
// Boxes are expected under a root directory as
//
//	root/<version>/<provider>/<name>.box
//
// with exactly one .box file per provider directory.
//
// # Usage
//
// Load or seed a manifest, reconcile it and write it back:
//
//	m, err := manifest.NewLoader().Seed("metadata.json", name, description, baseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := manifest.NewReconciler(checksum.NewSHA1Digester(), manifest.ReconcileOptions{})
//	result, err := r.Reconcile(ctx, root, m, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manifest.NewWriter().Write("metadata.json", result.Manifest)
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: manifest file does not exist
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrMissingField: a required base field is empty
//
// Reconciliation failures carry domain.ErrArtifactCount or
// domain.ErrFilesystem.
package manifest
