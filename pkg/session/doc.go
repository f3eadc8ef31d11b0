/*
Package session implements settings profile management and persistence orchestration.

It is the reducer of the change events settings fields emit: every change is
applied as a read-modify-write of one account's snapshot under a per-account
lock, optionally also under a distributed lock so that several replicas
sharing a store never lose updates.
*/
package session
