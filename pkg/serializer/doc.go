// Package serializer writes plans and other command output in JSON, YAML or
// table form, and reads site configuration files in JSON or YAML.
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, plan); err != nil {
//		return err
//	}
//
// Table output flattens nested structures into dotted keys.
package serializer
