package region

// Static three-level hierarchy: region (province) -> subregion (city) ->
// locality (district). Names are keyed by locale; "zh" is the default and is
// always present.

type Region struct {
	ID    string            `json:"id"`
	Names map[string]string `json:"names"`
}

type Subregion struct {
	ID       string            `json:"id"`
	RegionID string            `json:"region_id"`
	Names    map[string]string `json:"names"`
}

type Locality struct {
	ID          string            `json:"id"`
	SubregionID string            `json:"subregion_id"`
	Names       map[string]string `json:"names"`
}

var regions = []Region{
	{ID: "bj", Names: map[string]string{"zh": "北京市", "en": "Beijing"}},
	{ID: "sh", Names: map[string]string{"zh": "上海市", "en": "Shanghai"}},
	{ID: "gd", Names: map[string]string{"zh": "广东省", "en": "Guangdong"}},
	{ID: "sc", Names: map[string]string{"zh": "四川省", "en": "Sichuan"}},
}

var subregions = []Subregion{
	{ID: "bj-bj", RegionID: "bj", Names: map[string]string{"zh": "北京市", "en": "Beijing City"}},
	{ID: "sh-sh", RegionID: "sh", Names: map[string]string{"zh": "上海市", "en": "Shanghai City"}},
	{ID: "gd-gz", RegionID: "gd", Names: map[string]string{"zh": "广州市", "en": "Guangzhou"}},
	{ID: "gd-sz", RegionID: "gd", Names: map[string]string{"zh": "深圳市", "en": "Shenzhen"}},
	{ID: "gd-fs", RegionID: "gd", Names: map[string]string{"zh": "佛山市"}},
	{ID: "sc-cd", RegionID: "sc", Names: map[string]string{"zh": "成都市", "en": "Chengdu"}},
	{ID: "sc-my", RegionID: "sc", Names: map[string]string{"zh": "绵阳市", "en": "Mianyang"}},
}

var localities = []Locality{
	{ID: "bj-bj-hd", SubregionID: "bj-bj", Names: map[string]string{"zh": "海淀区", "en": "Haidian"}},
	{ID: "bj-bj-cy", SubregionID: "bj-bj", Names: map[string]string{"zh": "朝阳区", "en": "Chaoyang"}},
	{ID: "bj-bj-xc", SubregionID: "bj-bj", Names: map[string]string{"zh": "西城区", "en": "Xicheng"}},
	{ID: "sh-sh-pd", SubregionID: "sh-sh", Names: map[string]string{"zh": "浦东新区", "en": "Pudong"}},
	{ID: "sh-sh-xh", SubregionID: "sh-sh", Names: map[string]string{"zh": "徐汇区", "en": "Xuhui"}},
	{ID: "gd-gz-th", SubregionID: "gd-gz", Names: map[string]string{"zh": "天河区", "en": "Tianhe"}},
	{ID: "gd-gz-yx", SubregionID: "gd-gz", Names: map[string]string{"zh": "越秀区", "en": "Yuexiu"}},
	{ID: "gd-sz-ns", SubregionID: "gd-sz", Names: map[string]string{"zh": "南山区", "en": "Nanshan"}},
	{ID: "gd-sz-ft", SubregionID: "gd-sz", Names: map[string]string{"zh": "福田区", "en": "Futian"}},
	{ID: "gd-fs-cc", SubregionID: "gd-fs", Names: map[string]string{"zh": "禅城区"}},
	{ID: "sc-cd-wh", SubregionID: "sc-cd", Names: map[string]string{"zh": "武侯区", "en": "Wuhou"}},
	{ID: "sc-cd-jn", SubregionID: "sc-cd", Names: map[string]string{"zh": "锦江区", "en": "Jinjiang"}},
	{ID: "sc-my-fc", SubregionID: "sc-my", Names: map[string]string{"zh": "涪城区"}},
}
