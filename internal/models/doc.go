// Package models defines the core domain models for the contact book.
//
// # Models
//
//   - Person: a contact with a postal address, owning zero or more phone numbers
//   - PhoneNumber: a labeled number belonging to exactly one person
//   - User: the operator account used to log in
//
// # Design Principles
//
// 1. **Storage assigns identity**: Person.ID is zero until the store commits the insert
// 2. **Children travel with the parent**: a Person carries its PhoneNumbers, never the reverse
// 3. **Formats are checked at the edge**: the prompts validate dates, emails and numbers
//    before a value reaches these types
package models
