package convert

import "github.com/tordrt/avroschema/internal/avro"

// emit names the root record after the model and hands it out.
// Top-level records never carry a required list.
func (a *assembler) emit(modelName string) *avro.Record {
	root := a.root
	root.Name = modelName
	root.Required = nil
	return root
}
