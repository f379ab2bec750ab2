// Package repository handles all interactions with the database.
//
// It holds the raw SQL for actors, directors and movies, and the
// movie aggregate protocol that writes a movie together with its cast
// and crew in one transaction. Every failure leaves this package as an
// *errs.Error.
package repository
