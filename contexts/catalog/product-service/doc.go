// Package productservice wires the catalog product module: soft-deleting
// CRUD over products, optional idempotent creates, and a transactional
// outbox that feeds product.created, product.updated and product.deleted
// events to the message bus.
package productservice
