// Package services implements the core application logic behind the
// driving ports: folder import, two-tier search, the vector cache and
// the model manager that owns the encoder.
//
// Services depend only on domain types and the driven ports; all
// infrastructure (SQLite, ONNX runtime, filesystem) is injected.
package services
