// Package environment carries the deployment environment name through the
// request context and exposes it to the logger.
package environment
