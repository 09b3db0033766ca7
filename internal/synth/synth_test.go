package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlalign/internal/align"
	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
)

const postDO = `/**
 * 岗位信息 DO
 */
@TableName("system_post")
@KeySequence("system_post_seq")
public class PostDO extends BaseDO {
    /** 岗位ID */
    private Long id;
    /** 岗位名称 */
    private String name;
    /** 岗位编码 */
    private String code;
    /** 状态 */
    private Integer status;
    /** 创建时间 */
    private LocalDateTime createTime;
}
`

func optionsFor(t dialect.Type) Options {
	opts := DefaultOptions()
	opts.Dialect = t
	return opts
}

func TestSynthesizePostgreSQL(t *testing.T) {
	want := `-- ----------------------------
-- Table structure for system_post
-- ----------------------------
DROP TABLE IF EXISTS "system_post";
CREATE TABLE "system_post" (
    "id"          int8         NOT NULL PRIMARY KEY,
    "name"        varchar(255) NOT NULL,
    "code"        varchar(64)  NOT NULL,
    "status"      int4         NOT NULL DEFAULT 0,
    "create_time" timestamp    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    "tenant_id"   int8         NOT NULL DEFAULT 0,
    "creator"     varchar(64),
    "updater"     varchar(64),
    "update_time" timestamp    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    "deleted"     int2         NOT NULL DEFAULT 0
);
COMMENT ON COLUMN "system_post"."id"            IS '岗位ID';
COMMENT ON COLUMN "system_post"."name"          IS '岗位名称';
COMMENT ON COLUMN "system_post"."code"          IS '岗位编码';
COMMENT ON COLUMN "system_post"."status"        IS '状态';
COMMENT ON COLUMN "system_post"."create_time"   IS '创建时间';
COMMENT ON COLUMN "system_post"."tenant_id"     IS 'Tenant ID';
COMMENT ON COLUMN "system_post"."creator"       IS 'Creator';
COMMENT ON COLUMN "system_post"."updater"       IS 'Updater';
COMMENT ON COLUMN "system_post"."update_time"   IS 'Update time';
COMMENT ON COLUMN "system_post"."deleted"       IS 'Deleted flag';
COMMENT ON TABLE "system_post"                  IS '岗位信息表';

DROP SEQUENCE IF EXISTS "system_post_seq";
CREATE SEQUENCE "system_post_seq" START 1;
`
	got, err := Synthesize(postDO, optionsFor(dialect.PostgreSQL))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSynthesizeMySQL(t *testing.T) {
	want := "-- ----------------------------\n" +
		"-- Table structure for system_post\n" +
		"-- ----------------------------\n" +
		"DROP TABLE IF EXISTS `system_post`;\n" +
		"CREATE TABLE `system_post` (\n" +
		"    `id`          bigint       NOT NULL AUTO_INCREMENT PRIMARY KEY,\n" +
		"    `name`        varchar(255) NOT NULL,\n" +
		"    `code`        varchar(64)  NOT NULL,\n" +
		"    `status`      int          NOT NULL DEFAULT 0,\n" +
		"    `create_time` datetime     NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"    `tenant_id`   bigint       NOT NULL DEFAULT 0,\n" +
		"    `creator`     varchar(64),\n" +
		"    `updater`     varchar(64),\n" +
		"    `update_time` datetime     NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"    `deleted`     tinyint      NOT NULL DEFAULT 0\n" +
		");\n" +
		"\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `id` bigint NOT NULL AUTO_INCREMENT COMMENT '岗位ID';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `name` varchar(255) NOT NULL COMMENT '岗位名称';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `code` varchar(64) NOT NULL COMMENT '岗位编码';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `status` int NOT NULL DEFAULT 0 COMMENT '状态';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `create_time` datetime NOT NULL DEFAULT CURRENT_TIMESTAMP COMMENT '创建时间';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `tenant_id` bigint NOT NULL DEFAULT 0 COMMENT 'Tenant ID';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `creator` varchar(64) COMMENT 'Creator';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `updater` varchar(64) COMMENT 'Updater';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `update_time` datetime NOT NULL DEFAULT CURRENT_TIMESTAMP COMMENT 'Update time';\n" +
		"ALTER TABLE `system_post` MODIFY COLUMN `deleted` tinyint NOT NULL DEFAULT 0 COMMENT 'Deleted flag';\n" +
		"ALTER TABLE `system_post` COMMENT = '岗位信息表';\n"

	got, err := Synthesize(postDO, optionsFor(dialect.MySQL))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "SEQUENCE")
}

func TestSynthesizeOracle(t *testing.T) {
	got, err := Synthesize(postDO, optionsFor(dialect.Oracle))
	require.NoError(t, err)

	assert.Contains(t, got, `    "id"          bigint       NOT NULL AUTO_INCREMENT PRIMARY KEY,`)
	assert.Contains(t, got, `ALTER TABLE "system_post" COMMENT = '岗位信息表';`)
	assert.True(t, strings.HasSuffix(got,
		"\nDROP SEQUENCE IF EXISTS \"system_post_seq\";\nCREATE SEQUENCE \"system_post_seq\" START WITH 1;\n"))
}

func TestSynthesizeMinimalOptions(t *testing.T) {
	opts := Options{
		Schema:  "app",
		Dialect: dialect.PostgreSQL,
		Align:   core.DefaultAlignOptions(),
	}
	want := `CREATE TABLE "app"."system_post" (
    "id"         int8         NOT NULL PRIMARY KEY,
    "name"       varchar(255) NOT NULL,
    "code"       varchar(64)  NOT NULL,
    "status"     int4         NOT NULL DEFAULT 0,
    "createTime" timestamp    NOT NULL DEFAULT CURRENT_TIMESTAMP
);
COMMENT ON COLUMN "app"."system_post"."id"           IS '岗位ID';
COMMENT ON COLUMN "app"."system_post"."name"         IS '岗位名称';
COMMENT ON COLUMN "app"."system_post"."code"         IS '岗位编码';
COMMENT ON COLUMN "app"."system_post"."status"       IS '状态';
COMMENT ON COLUMN "app"."system_post"."createTime"   IS '创建时间';
COMMENT ON TABLE "app"."system_post"                 IS '岗位信息';
`
	got, err := Synthesize(postDO, opts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSynthesizeDerivedTableName(t *testing.T) {
	src := `public class OrderItem {
    private String remark;
    private Long orderId;
}`
	opts := DefaultOptions()
	opts.IncludeBaseFields = false

	want := `-- ----------------------------
-- Table structure for order_item
-- ----------------------------
DROP TABLE IF EXISTS "order_item";
CREATE TABLE "order_item" (
    "remark"   varchar(255),
    "order_id" int8
);
`
	got, err := Synthesize(src, opts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSynthesizeBaseFieldDedupe(t *testing.T) {
	src := `class AuditDO {
    private String creator;
    private Boolean deleted;
    private LocalDateTime update_time;
}`
	got, err := Synthesize(src, DefaultOptions())
	require.NoError(t, err)

	for _, col := range []string{`"creator"`, `"deleted"`, `"update_time"`} {
		assert.Equal(t, 1, strings.Count(got, "    "+col+" "), col)
	}
	for _, col := range []string{`"tenant_id"`, `"create_time"`, `"updater"`} {
		assert.Equal(t, 1, strings.Count(got, "    "+col+" "), col)
	}
}

func TestSynthesizeSequenceDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeSequence = false
	got, err := Synthesize(postDO, opts)
	require.NoError(t, err)
	assert.NotContains(t, got, "SEQUENCE")
}

func TestSynthesizeIsAligned(t *testing.T) {
	for _, typ := range dialect.SupportedTypes() {
		t.Run(string(typ), func(t *testing.T) {
			opts := optionsFor(typ)
			got, err := Synthesize(postDO, opts)
			require.NoError(t, err)
			assert.Equal(t, got, align.Align(got, opts.Align))
		})
	}
}

func TestSynthesizeNoTypeName(t *testing.T) {
	_, err := Synthesize("private String orphan;", DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTypeName)

	text := SynthesizeText("private String orphan;", DefaultOptions())
	assert.True(t, IsErrorText(text))
	assert.NotContains(t, text, "CREATE")
	assert.Equal(t, 1, strings.Count(text, "\n")+1)
}

func TestSynthesizeTextSuccess(t *testing.T) {
	text := SynthesizeText(postDO, DefaultOptions())
	assert.False(t, IsErrorText(text))
	assert.Contains(t, text, `CREATE TABLE "system_post" (`)
}

func TestTableComment(t *testing.T) {
	tests := []struct {
		comment, suffix, want string
	}{
		{comment: "用户信息 DO", suffix: "表", want: "用户信息表"},
		{comment: "用户信息表", suffix: "表", want: "用户信息表"},
		{comment: "Users", suffix: " table", want: "Users table"},
		{comment: "Users", suffix: "", want: "Users"},
		{comment: "", suffix: "表", want: ""},
		{comment: "用户 DOMAIN", suffix: "表", want: "用户 DOMAIN表"},
		{comment: "DO 对象 DO", suffix: "", want: "DO 对象"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tableComment(tt.comment, tt.suffix), tt.comment)
	}
}

func TestSynthesizeEscapedCommentIsAligned(t *testing.T) {
	src := `@TableName("sys_user")
public class UserDO {
    /** 价格 */
    private BigDecimal price;
    /** 备注 it's fine */
    private String remark;
}`
	opts := DefaultOptions()
	opts.IncludeBaseFields = false

	got, err := Synthesize(src, opts)
	require.NoError(t, err)
	assert.Contains(t, got, `COMMENT ON COLUMN "sys_user"."price"    IS '价格';`)
	assert.Contains(t, got, `COMMENT ON COLUMN "sys_user"."remark"   IS '备注 it''s fine';`)

	column := -1
	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "COMMENT ON") {
			continue
		}
		idx := strings.Index(line, " IS '")
		if column < 0 {
			column = idx
		}
		assert.Equal(t, column, idx, line)
	}
	assert.Equal(t, got, align.Align(got, opts.Align))
}

func TestSynthesizeSchemaQualifiedTableName(t *testing.T) {
	src := `/** 订单 */
@TableName("app.shop_order")
public class OrderDO {
    /** 订单号 */
    private String orderNo;
}`
	opts := DefaultOptions()
	opts.IncludeBaseFields = false

	got, err := Synthesize(src, opts)
	require.NoError(t, err)
	assert.Contains(t, got, "-- Table structure for shop_order\n")
	assert.Contains(t, got, `DROP TABLE IF EXISTS "app"."shop_order";`)
	assert.Contains(t, got, `CREATE TABLE "app"."shop_order" (`)
	assert.Contains(t, got, `COMMENT ON TABLE "app"."shop_order"`)
	assert.NotContains(t, got, `"app.shop_order"`)

	opts.Schema = "other"
	got, err = Synthesize(src, opts)
	require.NoError(t, err)
	assert.Contains(t, got, `CREATE TABLE "app"."shop_order" (`)
}
