package components

// LevelTitleComponent 标记关卡标题实体
// 全局最多只存在一个，所有关卡（包括主菜单）进入时都会重建，
// 因此退出状态时无需手动删除
type LevelTitleComponent struct{}
