// Package swapi fetches resource collections from the upstream SWAPI
// service.
//
// The client walks a category's pages lazily through a Pager and retries
// transient failures per page with exponential backoff. Raw records are
// decoded against an explicit per-category schema before they reach the
// persistence layer; relationship fields hold upstream locators that the
// reference resolver turns into local keys.
package swapi
