package registry

// Built-in categories used by the bundled administrative document types.
const (
	CategoryDecisions = "Quyết định & Nghị quyết"
	CategoryLetters   = "Công văn"
	CategoryOther     = "Văn bản khác"
)

// DefaultLabel is the document type preselected by the dashboard.
const DefaultLabel = "Mẫu 5a: Công văn hành chính (Khi gửi đến 1 cơ quan, đơn vị)"

// Builtin returns the bundled administrative document types. Each call
// returns a fresh slice.
func Builtin() []Entry {
	return []Entry{
		{Label: "Mẫu 1: Nghị quyết (cá biệt)", Category: CategoryDecisions, ReferencePath: "list_1.docx", TemplatePath: "mau_1_nghi_quyet.docx"},
		{Label: "Mẫu 2: Quyết định (cá biệt) quy định trực tiếp (đối với Hội đồng, Ban được phép sử dụng dấu)", Category: CategoryDecisions, ReferencePath: "list_2.docx", TemplatePath: "mau_2_quyet_dinh_truc_tiep_hd_ban.docx"},
		{Label: "Mẫu 3: Quyết định (cá biệt) quy định trực tiếp", Category: CategoryDecisions, ReferencePath: "list_3.docx", TemplatePath: "mau_3_quyet_dinh_truc_tiep.docx"},
		{Label: "Mẫu 4: Quyết định (cá biệt) quy định gián tiếp", Category: CategoryDecisions, ReferencePath: "list_4.docx", TemplatePath: "mau_4_quyet_dinh_gian_tiep.docx"},
		{Label: "Mẫu 4a: Quy chế, quy định (ban hành kèm theo quyết định)", Category: CategoryDecisions, ReferencePath: "list_4a.docx", TemplatePath: "mau_4a_quy_che_quy_dinh.docx"},
		{Label: "Mẫu 4b: Văn bản khác (ban hành hoặc phê duyệt kèm theo quyết định)", Category: CategoryDecisions, ReferencePath: "list_4b.docx", TemplatePath: "mau_4b_van_ban_khac.docx"},
		{Label: "Mẫu 5a: Công văn hành chính (Khi gửi đến 1 cơ quan, đơn vị)", Category: CategoryLetters, ReferencePath: "list_5a.docx", TemplatePath: "mau_5a_cong_van_hanh_chinh_mot.docx"},
		{Label: "Mẫu 5b: Công văn hành chính (Khi gửi đến nhiều cơ quan, đơn vị)", Category: CategoryLetters, ReferencePath: "list_5b.docx", TemplatePath: "mau_5b_cong_van_hanh_chinh_nhieu.docx"},
		{Label: "Mẫu 6: Văn bản có tên loại", Category: CategoryOther, ReferencePath: "list_6.docx", TemplatePath: "mau_6_van_ban_co_ten_loai.docx"},
		{Label: "Mẫu 7: Tờ trình", Category: CategoryOther, ReferencePath: "list_7.docx", TemplatePath: "mau_7_to_trinh.docx"},
		{Label: "Mẫu 8: Biên bản", Category: CategoryOther, ReferencePath: "list_8.docx", TemplatePath: "mau_8_bien_ban.docx"},
		{Label: "Mẫu 9a: Giấy mời", Category: CategoryOther, ReferencePath: "list_9a.docx", TemplatePath: "mau_9a_giay_moi.docx"},
		{Label: "Mẫu 9b: Giấy mời", Category: CategoryOther, ReferencePath: "list_9b.docx", TemplatePath: "mau_9b_giay_moi.docx"},
		{Label: "Mẫu 10: Phụ lục văn bản hành chính", Category: CategoryOther, ReferencePath: "list_10.docx", TemplatePath: "mau_10_phu_luc.docx"},
	}
}

// NewBuiltin builds a registry over the bundled entries with DefaultLabel
// preselected.
func NewBuiltin() *Registry {
	return MustNew(Builtin(), WithDefault(DefaultLabel))
}
