// Package orchestrator wires the registry → extractor → form synthesizer →
// exporter pipeline behind two calls: Analyze for a selected document type and
// Generate for a submission.
package orchestrator
