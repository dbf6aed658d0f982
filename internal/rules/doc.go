// Package rules holds the loaded rule tables and resolves which rule
// applies to an item.
//
// Rule lists are evaluated LIFO: the last declared rule has the highest
// priority, so user rule files appended after the built-in ones shadow
// them. Resolution returns the payload of the first matching rule walking
// from the end of the list; payload coercion is left to the caller.
package rules
