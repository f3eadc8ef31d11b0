/*
Package domain contains the core models of the local settings service.

It defines the typed settings tree, the path-addressed lenses used to read and
write it, the change events emitted by settings fields and the static field
descriptors the settings dialog is built from. This package is kept pure and
free of I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Settings: an immutable snapshot of one account's local preferences.
  - Path: an ordered sequence of keys addressing one preference.
  - Lens: a typed getter/setter pair focused on one path of the tree.
  - Change: a (path, value) event produced by a field interaction.
  - FieldDescriptor: static metadata describing how one preference is edited.
*/
package domain
