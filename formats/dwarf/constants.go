// NOTE: tag/attribute/form names and values are from DWARF 5 table 7.3,
// 7.5.4, and 7.5.6.

package dwarf

import (
	"fmt"
)

// Tag identifies what kind of debug-info entry a DIE describes (compile
// unit, subprogram, variable, ...).
type Tag uint64

const (
	DW_TAG_array_type               = Tag(0x01)
	DW_TAG_class_type               = Tag(0x02)
	DW_TAG_entry_point              = Tag(0x03)
	DW_TAG_enumeration_type         = Tag(0x04)
	DW_TAG_formal_parameter         = Tag(0x05)
	DW_TAG_imported_declaration     = Tag(0x08)
	DW_TAG_label                    = Tag(0x0a)
	DW_TAG_lexical_block            = Tag(0x0b)
	DW_TAG_member                   = Tag(0x0d)
	DW_TAG_pointer_type             = Tag(0x0f)
	DW_TAG_reference_type           = Tag(0x10)
	DW_TAG_compile_unit             = Tag(0x11)
	DW_TAG_string_type              = Tag(0x12)
	DW_TAG_structure_type           = Tag(0x13)
	DW_TAG_subroutine_type          = Tag(0x15)
	DW_TAG_typedef                  = Tag(0x16)
	DW_TAG_union_type               = Tag(0x17)
	DW_TAG_unspecified_parameters   = Tag(0x18)
	DW_TAG_variant                  = Tag(0x19)
	DW_TAG_common_block             = Tag(0x1a)
	DW_TAG_common_inclusion         = Tag(0x1b)
	DW_TAG_inheritance              = Tag(0x1c)
	DW_TAG_inlined_subroutine       = Tag(0x1d)
	DW_TAG_module                   = Tag(0x1e)
	DW_TAG_ptr_to_member_type       = Tag(0x1f)
	DW_TAG_set_type                 = Tag(0x20)
	DW_TAG_subrange_type            = Tag(0x21)
	DW_TAG_with_stmt                = Tag(0x22)
	DW_TAG_access_declaration       = Tag(0x23)
	DW_TAG_base_type                = Tag(0x24)
	DW_TAG_catch_block              = Tag(0x25)
	DW_TAG_const_type               = Tag(0x26)
	DW_TAG_constant                 = Tag(0x27)
	DW_TAG_enumerator               = Tag(0x28)
	DW_TAG_file_type                = Tag(0x29)
	DW_TAG_friend                   = Tag(0x2a)
	DW_TAG_namelist                 = Tag(0x2b)
	DW_TAG_namelist_item            = Tag(0x2c)
	DW_TAG_packed_type              = Tag(0x2d)
	DW_TAG_subprogram               = Tag(0x2e)
	DW_TAG_template_type_parameter  = Tag(0x2f)
	DW_TAG_template_value_parameter = Tag(0x30)
	DW_TAG_thrown_type              = Tag(0x31)
	DW_TAG_try_block                = Tag(0x32)
	DW_TAG_variant_part             = Tag(0x33)
	DW_TAG_variable                 = Tag(0x34)
	DW_TAG_volatile_type            = Tag(0x35)
	DW_TAG_dwarf_procedure          = Tag(0x36)
	DW_TAG_restrict_type            = Tag(0x37)
	DW_TAG_interface_type           = Tag(0x38)
	DW_TAG_namespace                = Tag(0x39)
	DW_TAG_imported_module          = Tag(0x3a)
	DW_TAG_unspecified_type         = Tag(0x3b)
	DW_TAG_partial_unit             = Tag(0x3c)
	DW_TAG_imported_unit            = Tag(0x3d)
	DW_TAG_condition                = Tag(0x3f)
	DW_TAG_shared_type              = Tag(0x40)
	DW_TAG_type_unit                = Tag(0x41)
	DW_TAG_rvalue_reference_type    = Tag(0x42)
	DW_TAG_template_alias           = Tag(0x43)
	DW_TAG_lo_user                  = Tag(0x4080)
	DW_TAG_hi_user                  = Tag(0xffff)
)

func (tag Tag) String() string {
	switch tag {
	case DW_TAG_array_type:
		return "DW_TAG_array_type"
	case DW_TAG_class_type:
		return "DW_TAG_class_type"
	case DW_TAG_entry_point:
		return "DW_TAG_entry_point"
	case DW_TAG_enumeration_type:
		return "DW_TAG_enumeration_type"
	case DW_TAG_formal_parameter:
		return "DW_TAG_formal_parameter"
	case DW_TAG_imported_declaration:
		return "DW_TAG_imported_declaration"
	case DW_TAG_label:
		return "DW_TAG_label"
	case DW_TAG_lexical_block:
		return "DW_TAG_lexical_block"
	case DW_TAG_member:
		return "DW_TAG_member"
	case DW_TAG_pointer_type:
		return "DW_TAG_pointer_type"
	case DW_TAG_reference_type:
		return "DW_TAG_reference_type"
	case DW_TAG_compile_unit:
		return "DW_TAG_compile_unit"
	case DW_TAG_string_type:
		return "DW_TAG_string_type"
	case DW_TAG_structure_type:
		return "DW_TAG_structure_type"
	case DW_TAG_subroutine_type:
		return "DW_TAG_subroutine_type"
	case DW_TAG_typedef:
		return "DW_TAG_typedef"
	case DW_TAG_union_type:
		return "DW_TAG_union_type"
	case DW_TAG_unspecified_parameters:
		return "DW_TAG_unspecified_parameters"
	case DW_TAG_variant:
		return "DW_TAG_variant"
	case DW_TAG_common_block:
		return "DW_TAG_common_block"
	case DW_TAG_common_inclusion:
		return "DW_TAG_common_inclusion"
	case DW_TAG_inheritance:
		return "DW_TAG_inheritance"
	case DW_TAG_inlined_subroutine:
		return "DW_TAG_inlined_subroutine"
	case DW_TAG_module:
		return "DW_TAG_module"
	case DW_TAG_ptr_to_member_type:
		return "DW_TAG_ptr_to_member_type"
	case DW_TAG_set_type:
		return "DW_TAG_set_type"
	case DW_TAG_subrange_type:
		return "DW_TAG_subrange_type"
	case DW_TAG_with_stmt:
		return "DW_TAG_with_stmt"
	case DW_TAG_access_declaration:
		return "DW_TAG_access_declaration"
	case DW_TAG_base_type:
		return "DW_TAG_base_type"
	case DW_TAG_catch_block:
		return "DW_TAG_catch_block"
	case DW_TAG_const_type:
		return "DW_TAG_const_type"
	case DW_TAG_constant:
		return "DW_TAG_constant"
	case DW_TAG_enumerator:
		return "DW_TAG_enumerator"
	case DW_TAG_file_type:
		return "DW_TAG_file_type"
	case DW_TAG_friend:
		return "DW_TAG_friend"
	case DW_TAG_namelist:
		return "DW_TAG_namelist"
	case DW_TAG_namelist_item:
		return "DW_TAG_namelist_item"
	case DW_TAG_packed_type:
		return "DW_TAG_packed_type"
	case DW_TAG_subprogram:
		return "DW_TAG_subprogram"
	case DW_TAG_template_type_parameter:
		return "DW_TAG_template_type_parameter"
	case DW_TAG_template_value_parameter:
		return "DW_TAG_template_value_parameter"
	case DW_TAG_thrown_type:
		return "DW_TAG_thrown_type"
	case DW_TAG_try_block:
		return "DW_TAG_try_block"
	case DW_TAG_variant_part:
		return "DW_TAG_variant_part"
	case DW_TAG_variable:
		return "DW_TAG_variable"
	case DW_TAG_volatile_type:
		return "DW_TAG_volatile_type"
	case DW_TAG_dwarf_procedure:
		return "DW_TAG_dwarf_procedure"
	case DW_TAG_restrict_type:
		return "DW_TAG_restrict_type"
	case DW_TAG_interface_type:
		return "DW_TAG_interface_type"
	case DW_TAG_namespace:
		return "DW_TAG_namespace"
	case DW_TAG_imported_module:
		return "DW_TAG_imported_module"
	case DW_TAG_unspecified_type:
		return "DW_TAG_unspecified_type"
	case DW_TAG_partial_unit:
		return "DW_TAG_partial_unit"
	case DW_TAG_imported_unit:
		return "DW_TAG_imported_unit"
	case DW_TAG_condition:
		return "DW_TAG_condition"
	case DW_TAG_shared_type:
		return "DW_TAG_shared_type"
	case DW_TAG_type_unit:
		return "DW_TAG_type_unit"
	case DW_TAG_rvalue_reference_type:
		return "DW_TAG_rvalue_reference_type"
	case DW_TAG_template_alias:
		return "DW_TAG_template_alias"
	case DW_TAG_lo_user:
		return "DW_TAG_lo_user"
	case DW_TAG_hi_user:
		return "DW_TAG_hi_user"
	default:
		return fmt.Sprintf("DW_TAG_unknown_%d", uint64(tag))
	}
}

// Attribute identifies one field of a debug-info entry (DW_AT_name,
// DW_AT_low_pc, ...).
type Attribute uint64

const (
	DW_AT_sibling              = Attribute(0x01)
	DW_AT_location             = Attribute(0x02)
	DW_AT_name                 = Attribute(0x03)
	DW_AT_ordering             = Attribute(0x09)
	DW_AT_byte_size            = Attribute(0x0b)
	DW_AT_bit_offset           = Attribute(0x0c)
	DW_AT_bit_size             = Attribute(0x0d)
	DW_AT_stmt_list            = Attribute(0x10)
	DW_AT_low_pc               = Attribute(0x11)
	DW_AT_high_pc              = Attribute(0x12)
	DW_AT_language             = Attribute(0x13)
	DW_AT_discr                = Attribute(0x15)
	DW_AT_discr_value          = Attribute(0x16)
	DW_AT_visibility           = Attribute(0x17)
	DW_AT_import               = Attribute(0x18)
	DW_AT_string_length        = Attribute(0x19)
	DW_AT_common_reference     = Attribute(0x1a)
	DW_AT_comp_dir             = Attribute(0x1b)
	DW_AT_const_value          = Attribute(0x1c)
	DW_AT_containing_type      = Attribute(0x1d)
	DW_AT_default_value        = Attribute(0x1e)
	DW_AT_inline               = Attribute(0x20)
	DW_AT_is_optional          = Attribute(0x21)
	DW_AT_lower_bound          = Attribute(0x22)
	DW_AT_producer             = Attribute(0x25)
	DW_AT_prototyped           = Attribute(0x27)
	DW_AT_return_addr          = Attribute(0x2a)
	DW_AT_start_scope          = Attribute(0x2c)
	DW_AT_bit_stride           = Attribute(0x2e)
	DW_AT_upper_bound          = Attribute(0x2f)
	DW_AT_abstract_origin      = Attribute(0x31)
	DW_AT_accessibility        = Attribute(0x32)
	DW_AT_address_class        = Attribute(0x33)
	DW_AT_artificial           = Attribute(0x34)
	DW_AT_base_types           = Attribute(0x35)
	DW_AT_calling_convention   = Attribute(0x36)
	DW_AT_count                = Attribute(0x37)
	DW_AT_data_member_location = Attribute(0x38)
	DW_AT_decl_column          = Attribute(0x39)
	DW_AT_decl_file            = Attribute(0x3a)
	DW_AT_decl_line            = Attribute(0x3b)
	DW_AT_declaration          = Attribute(0x3c)
	DW_AT_discr_list           = Attribute(0x3d)
	DW_AT_encoding             = Attribute(0x3e)
	DW_AT_external             = Attribute(0x3f)
	DW_AT_frame_base           = Attribute(0x40)
	DW_AT_friend               = Attribute(0x41)
	DW_AT_identifier_case      = Attribute(0x42)
	DW_AT_macro_info           = Attribute(0x43)
	DW_AT_namelist_item        = Attribute(0x44)
	DW_AT_priority             = Attribute(0x45)
	DW_AT_segment              = Attribute(0x46)
	DW_AT_specification        = Attribute(0x47)
	DW_AT_static_link          = Attribute(0x48)
	DW_AT_type                 = Attribute(0x49)
	DW_AT_use_location         = Attribute(0x4a)
	DW_AT_variable_parameter   = Attribute(0x4b)
	DW_AT_virtuality           = Attribute(0x4c)
	DW_AT_vtable_elem_location = Attribute(0x4d)
	DW_AT_allocated            = Attribute(0x4e)
	DW_AT_associated           = Attribute(0x4f)
	DW_AT_data_location        = Attribute(0x50)
	DW_AT_byte_stride          = Attribute(0x51)
	DW_AT_entry_pc             = Attribute(0x52)
	DW_AT_use_UTF8             = Attribute(0x53)
	DW_AT_extension            = Attribute(0x54)
	DW_AT_ranges               = Attribute(0x55)
	DW_AT_trampoline           = Attribute(0x56)
	DW_AT_call_column          = Attribute(0x57)
	DW_AT_call_file            = Attribute(0x58)
	DW_AT_call_line            = Attribute(0x59)
	DW_AT_description          = Attribute(0x5a)
	DW_AT_binary_scale         = Attribute(0x5b)
	DW_AT_decimal_scale        = Attribute(0x5c)
	DW_AT_small                = Attribute(0x5d)
	DW_AT_decimal_sign         = Attribute(0x5e)
	DW_AT_digit_count          = Attribute(0x5f)
	DW_AT_picture_string       = Attribute(0x60)
	DW_AT_mutable              = Attribute(0x61)
	DW_AT_threads_scaled       = Attribute(0x62)
	DW_AT_explicit             = Attribute(0x63)
	DW_AT_object_pointer       = Attribute(0x64)
	DW_AT_endianity            = Attribute(0x65)
	DW_AT_elemental            = Attribute(0x66)
	DW_AT_pure                 = Attribute(0x67)
	DW_AT_recursive            = Attribute(0x68)
	DW_AT_signature            = Attribute(0x69)
	DW_AT_main_subprogram      = Attribute(0x6a)
	DW_AT_data_bit_offset      = Attribute(0x6b)
	DW_AT_const_expr           = Attribute(0x6c)
	DW_AT_enum_class           = Attribute(0x6d)
	DW_AT_linkage_name         = Attribute(0x6e)
	DW_AT_lo_user              = Attribute(0x2000)
	DW_AT_hi_user              = Attribute(0x3fff)
)

func (attr Attribute) String() string {
	switch attr {
	case DW_AT_sibling:
		return "DW_AT_sibling"
	case DW_AT_location:
		return "DW_AT_location"
	case DW_AT_name:
		return "DW_AT_name"
	case DW_AT_byte_size:
		return "DW_AT_byte_size"
	case DW_AT_stmt_list:
		return "DW_AT_stmt_list"
	case DW_AT_low_pc:
		return "DW_AT_low_pc"
	case DW_AT_high_pc:
		return "DW_AT_high_pc"
	case DW_AT_language:
		return "DW_AT_language"
	case DW_AT_comp_dir:
		return "DW_AT_comp_dir"
	case DW_AT_const_value:
		return "DW_AT_const_value"
	case DW_AT_producer:
		return "DW_AT_producer"
	case DW_AT_decl_file:
		return "DW_AT_decl_file"
	case DW_AT_decl_line:
		return "DW_AT_decl_line"
	case DW_AT_declaration:
		return "DW_AT_declaration"
	case DW_AT_encoding:
		return "DW_AT_encoding"
	case DW_AT_external:
		return "DW_AT_external"
	case DW_AT_frame_base:
		return "DW_AT_frame_base"
	case DW_AT_specification:
		return "DW_AT_specification"
	case DW_AT_type:
		return "DW_AT_type"
	case DW_AT_ranges:
		return "DW_AT_ranges"
	case DW_AT_call_file:
		return "DW_AT_call_file"
	case DW_AT_call_line:
		return "DW_AT_call_line"
	case DW_AT_abstract_origin:
		return "DW_AT_abstract_origin"
	case DW_AT_artificial:
		return "DW_AT_artificial"
	case DW_AT_linkage_name:
		return "DW_AT_linkage_name"
	case DW_AT_lo_user:
		return "DW_AT_lo_user"
	case DW_AT_hi_user:
		return "DW_AT_hi_user"
	default:
		return fmt.Sprintf("DW_AT_unknown_%#x", uint64(attr))
	}
}

// Format identifies how an attribute's value is encoded in .debug_info
// (DW_FORM_*), independent of what the attribute means.
type Format uint64

const (
	DW_FORM_addr         = Format(0x01)
	DW_FORM_block2       = Format(0x03)
	DW_FORM_block4       = Format(0x04)
	DW_FORM_data2        = Format(0x05)
	DW_FORM_data4        = Format(0x06)
	DW_FORM_data8        = Format(0x07)
	DW_FORM_string       = Format(0x08)
	DW_FORM_block        = Format(0x09)
	DW_FORM_block1       = Format(0x0a)
	DW_FORM_data1        = Format(0x0b)
	DW_FORM_flag         = Format(0x0c)
	DW_FORM_sdata        = Format(0x0d)
	DW_FORM_strp         = Format(0x0e)
	DW_FORM_udata        = Format(0x0f)
	DW_FORM_ref_addr     = Format(0x10)
	DW_FORM_ref1         = Format(0x11)
	DW_FORM_ref2         = Format(0x12)
	DW_FORM_ref4         = Format(0x13)
	DW_FORM_ref8         = Format(0x14)
	DW_FORM_ref_udata    = Format(0x15)
	DW_FORM_indirect     = Format(0x16)
	DW_FORM_sec_offset   = Format(0x17)
	DW_FORM_exprloc      = Format(0x18)
	DW_FORM_flag_present = Format(0x19)
	DW_FORM_ref_sig8     = Format(0x20)
)

func (format Format) String() string {
	switch format {
	case DW_FORM_addr:
		return "DW_FORM_addr"
	case DW_FORM_block2:
		return "DW_FORM_block2"
	case DW_FORM_block4:
		return "DW_FORM_block4"
	case DW_FORM_data2:
		return "DW_FORM_data2"
	case DW_FORM_data4:
		return "DW_FORM_data4"
	case DW_FORM_data8:
		return "DW_FORM_data8"
	case DW_FORM_string:
		return "DW_FORM_string"
	case DW_FORM_block:
		return "DW_FORM_block"
	case DW_FORM_block1:
		return "DW_FORM_block1"
	case DW_FORM_data1:
		return "DW_FORM_data1"
	case DW_FORM_flag:
		return "DW_FORM_flag"
	case DW_FORM_sdata:
		return "DW_FORM_sdata"
	case DW_FORM_strp:
		return "DW_FORM_strp"
	case DW_FORM_udata:
		return "DW_FORM_udata"
	case DW_FORM_ref_addr:
		return "DW_FORM_ref_addr"
	case DW_FORM_ref1:
		return "DW_FORM_ref1"
	case DW_FORM_ref2:
		return "DW_FORM_ref2"
	case DW_FORM_ref4:
		return "DW_FORM_ref4"
	case DW_FORM_ref8:
		return "DW_FORM_ref8"
	case DW_FORM_ref_udata:
		return "DW_FORM_ref_udata"
	case DW_FORM_indirect:
		return "DW_FORM_indirect"
	case DW_FORM_sec_offset:
		return "DW_FORM_sec_offset"
	case DW_FORM_exprloc:
		return "DW_FORM_exprloc"
	case DW_FORM_flag_present:
		return "DW_FORM_flag_present"
	case DW_FORM_ref_sig8:
		return "DW_FORM_ref_sig8"
	default:
		return fmt.Sprintf("DW_FORM_unknown_%#x", uint64(format))
	}
}
