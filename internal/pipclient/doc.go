// Package pipclient wraps the package-manager client used to capture
// dependency snapshots at checkpoint time.
package pipclient
